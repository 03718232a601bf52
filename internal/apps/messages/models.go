package messages

import (
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

// Realtime event names pushed to user rooms.
const (
	EventNewMessage  = "new_message"
	EventReadReceipt = "message_read_receipt"
)

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required,uuid"`
	Message    string `json:"message" validate:"required,notblank,max=5000"`
}

type Participant struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
}

// ConversationSummary is one row of the inbox: the latest message of a
// thread plus how many messages addressed to the caller are unread.
type ConversationSummary struct {
	ConversationID string         `json:"conversationId"`
	LastMessage    models.Message `json:"lastMessage"`
	UnreadCount    int64          `json:"unreadCount"`
	Participant    *Participant   `json:"participant,omitempty"`
}

type ConversationResponse struct {
	ConversationID string           `json:"conversationId"`
	Results        int              `json:"results"`
	Messages       []models.Message `json:"messages"`
}

type ConversationsResponse struct {
	Results       int                   `json:"results"`
	Conversations []ConversationSummary `json:"conversations"`
}

type readReceipt struct {
	MessageID uuid.UUID `json:"messageId"`
	ReaderID  uuid.UUID `json:"readerId"`
}

func participantOf(u *models.User) *Participant {
	return &Participant{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, PhotoURL: u.PhotoURL}
}
