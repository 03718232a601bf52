package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/vaxtrack/vaxtrack-backend/internal/config"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// ErrChannelDisabled is returned by adapters whose provider is not configured.
var ErrChannelDisabled = errors.New("channel not configured")

type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

type SendGridMailer struct {
	apiKey string
	from   *sgmail.Email
}

// NewMailer returns a SendGrid mailer, or a disabled one when no API key is set.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SendGridAPIKey == "" {
		slog.Warn("SENDGRID_API_KEY not set, email notifications disabled")
		return disabledMailer{}
	}
	return &SendGridMailer{
		apiKey: cfg.SendGridAPIKey,
		from:   sgmail.NewEmail(cfg.EmailFromName, cfg.EmailFrom),
	}
}

func (m *SendGridMailer) SendEmail(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.To))
	p.Subject = msg.Subject

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.Text), sgmail.NewContent("text/html", msg.HTML))

	req := sendgrid.GetRequest(m.apiKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(v3)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

type disabledMailer struct{}

func (disabledMailer) SendEmail(context.Context, EmailMessage) error {
	return ErrChannelDisabled
}
