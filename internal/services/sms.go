package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/vaxtrack/vaxtrack-backend/internal/config"
)

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type TwilioSMS struct {
	client *twilio.RestClient
	from   string
}

// NewSMSSender returns a Twilio sender, or a disabled one when credentials are missing.
func NewSMSSender(cfg *config.Config) SMSSender {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioPhoneNumber == "" {
		slog.Warn("Twilio credentials not set, SMS notifications disabled")
		return disabledSMS{}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &TwilioSMS{client: client, from: cfg.TwilioPhoneNumber}
}

func (t *TwilioSMS) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	if resp.Sid != nil {
		slog.Debug("sms sent", "sid", *resp.Sid)
	}
	return nil
}

type disabledSMS struct{}

func (disabledSMS) SendSMS(context.Context, string, string) error {
	return ErrChannelDisabled
}
