package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	NotificationVaccinationReminder  = "vaccination_reminder"
	NotificationAppointmentReminder  = "appointment_reminder"
	NotificationAppointmentConfirmed = "appointment_confirmed"
	NotificationMessageReceived      = "message_received"
	NotificationSystem               = "system"
	NotificationPromotional          = "promotional"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var (
	NotificationTypes = []string{NotificationVaccinationReminder, NotificationAppointmentReminder,
		NotificationAppointmentConfirmed, NotificationMessageReceived, NotificationSystem, NotificationPromotional}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
)

type Notification struct {
	ID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID            `gorm:"type:uuid;not null;index:idx_notifications_user_read,priority:1" json:"userId"`
	Type      string               `gorm:"size:40;not null" json:"type"`
	Title     string               `gorm:"size:255;not null" json:"title"`
	Message   string               `gorm:"type:text;not null" json:"message"`
	Data      datatypes.JSON       `gorm:"type:jsonb;default:'{}'" json:"data"`
	IsRead    bool                 `gorm:"not null;index:idx_notifications_user_read,priority:2" json:"isRead"`
	ReadAt    *time.Time           `json:"readAt,omitempty"`
	Priority  string               `gorm:"size:10;default:'medium'" json:"priority"`
	ActionURL string               `gorm:"size:255" json:"actionUrl,omitempty"`
	Channels  NotificationChannels `gorm:"embedded;embeddedPrefix:channel_" json:"channels"`
	ExpiresAt *time.Time           `gorm:"index" json:"expiresAt,omitempty"`
	CreatedAt time.Time            `gorm:"index:idx_notifications_user_read,priority:3" json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// NotificationChannels records when each outbound channel succeeded. The
// in-app copy is the push channel, so it has no marker of its own.
type NotificationChannels struct {
	EmailSentAt *time.Time `json:"emailSentAt,omitempty"`
	SMSSentAt   *time.Time `json:"smsSentAt,omitempty"`
}
