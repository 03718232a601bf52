package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/logging"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/datatypes"
)

// NotificationRequest describes one notification to persist and fan out.
type NotificationRequest struct {
	UserID    uuid.UUID
	Type      string
	Title     string
	Message   string
	Data      map[string]interface{}
	Priority  string
	ActionURL string
}

type NotificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
	MarkChannelSent(ctx context.Context, id uuid.UUID, channel string, at time.Time) error
}

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Dispatcher persists notifications and delivers them over the channels each
// user has opted into. Only persistence failures surface to the caller.
type Dispatcher struct {
	store  NotificationWriter
	users  UserFinder
	mailer Mailer
	sms    SMSSender
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
}

func NewDispatcher(store NotificationWriter, users UserFinder, mailer Mailer, sms SMSSender, ttl time.Duration) *Dispatcher {
	return &Dispatcher{
		store:  store,
		users:  users,
		mailer: mailer,
		sms:    sms,
		ttl:    ttl,
		now:    time.Now,
		log:    logging.Component("dispatcher"),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, req NotificationRequest) (*models.Notification, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	data := datatypes.JSON("{}")
	if len(req.Data) > 0 {
		raw, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification data: %w", err)
		}
		data = datatypes.JSON(raw)
	}

	now := d.now()
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Data:      data,
		Priority:  priority,
		ActionURL: req.ActionURL,
	}
	if d.ttl > 0 {
		expires := now.Add(d.ttl)
		n.ExpiresAt = &expires
	}

	if err := d.store.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	user, err := d.users.FindByID(ctx, req.UserID)
	if err != nil {
		d.log.Warn("notification saved but recipient lookup failed",
			"notification_id", n.ID.String(), "user_id", req.UserID.String(), "error", err.Error())
		return n, nil
	}

	if user.Preferences.Email && user.Email != "" {
		d.deliver(ctx, n, ChannelEmail, func() error {
			return d.mailer.SendEmail(ctx, emailFor(user, n))
		})
	}
	if user.Preferences.SMS && user.Phone != "" {
		d.deliver(ctx, n, ChannelSMS, func() error {
			return d.sms.SendSMS(ctx, user.Phone, fmt.Sprintf("VaxTrack: %s - %s", n.Title, n.Message))
		})
	}

	return n, nil
}

func (d *Dispatcher) deliver(ctx context.Context, n *models.Notification, channel string, send func() error) {
	if err := send(); err != nil {
		if err != ErrChannelDisabled {
			d.log.Error("notification channel failed",
				"notification_id", n.ID.String(), "channel", channel, "error", err.Error())
		}
		return
	}

	at := d.now()
	if err := d.store.MarkChannelSent(ctx, n.ID, channel, at); err != nil {
		d.log.Warn("failed to record channel delivery",
			"notification_id", n.ID.String(), "channel", channel, "error", err.Error())
		return
	}
	switch channel {
	case ChannelEmail:
		n.Channels.EmailSentAt = &at
	case ChannelSMS:
		n.Channels.SMSSentAt = &at
	}
}

func emailFor(user *models.User, n *models.Notification) EmailMessage {
	name := user.FirstName
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("Hi %s,\n\n%s\n\nBest regards,\nVaxTrack Team", name, n.Message)
	body := fmt.Sprintf(`<h2>%s</h2><p>Hi %s,</p><p>%s</p><p>Best regards,<br>VaxTrack Team</p>`,
		html.EscapeString(n.Title), html.EscapeString(name), html.EscapeString(n.Message))

	return EmailMessage{
		To:      user.Email,
		ToName:  user.FullName(),
		Subject: n.Title,
		Text:    text,
		HTML:    body,
	}
}
