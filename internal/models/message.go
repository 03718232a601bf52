package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ConversationID string     `gorm:"size:80;not null;index:idx_messages_conversation_created,priority:1" json:"conversationId"`
	SenderID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_participants,priority:1" json:"senderId"`
	ReceiverID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_participants,priority:2" json:"receiverId"`
	Body           string     `gorm:"column:message;type:text;not null" json:"message"`
	IsRead         bool       `gorm:"not null;index" json:"isRead"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	IsDeleted      bool       `gorm:"not null" json:"-"`
	DeletedAt      *time.Time `json:"-"`
	CreatedAt      time.Time  `gorm:"index:idx_messages_conversation_created,priority:2" json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ConversationID pairs two participants independently of who sent first.
func ConversationID(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}
