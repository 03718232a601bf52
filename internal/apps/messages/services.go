package messages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrSelfMessage      = errors.New("cannot send a message to yourself")
	ErrNotReceiver      = errors.New("only the receiver can mark a message as read")
	ErrNotSender        = errors.New("only the sender can delete a message")
)

// MessageService relays direct messages between users and pushes realtime
// events to the rooms of the participants.
type MessageService struct {
	store    Store
	users    services.UserFinder
	realtime apps.Broadcaster
	now      func() time.Time
}

func NewMessageService(store Store, users services.UserFinder, realtime apps.Broadcaster) *MessageService {
	return &MessageService{store: store, users: users, realtime: realtime, now: time.Now}
}

func (s *MessageService) Send(ctx context.Context, senderID uuid.UUID, req *SendMessageRequest) (*models.Message, error) {
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, ErrReceiverNotFound
	}
	if receiverID == senderID {
		return nil, ErrSelfMessage
	}

	receiver, err := s.users.FindByID(ctx, receiverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReceiverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up receiver: %w", err)
	}
	if !receiver.IsActive {
		return nil, ErrReceiverNotFound
	}

	m := &models.Message{
		ID:             uuid.New(),
		ConversationID: models.ConversationID(senderID, receiverID),
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Body:           strings.TrimSpace(req.Message),
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.emit(receiverID, EventNewMessage, m)
	return m, nil
}

// MarkRead flags a message as read by its receiver and sends a receipt to the
// sender. Marking an already read message is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, readerID, id uuid.UUID) (*models.Message, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.ReceiverID != readerID {
		return nil, ErrNotReceiver
	}
	if m.IsRead {
		return m, nil
	}

	at := s.now()
	if err := s.store.MarkRead(ctx, m, at); err != nil {
		return nil, fmt.Errorf("failed to mark message read: %w", err)
	}
	m.IsRead = true
	m.ReadAt = &at

	s.emit(m.SenderID, EventReadReceipt, readReceipt{MessageID: m.ID, ReaderID: readerID})
	return m, nil
}

func (s *MessageService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if m.SenderID != userID {
		return ErrNotSender
	}
	if err := s.store.SoftDelete(ctx, m, s.now()); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// Conversation returns the thread between the caller and another user,
// oldest first.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uuid.UUID) (*ConversationResponse, error) {
	id := models.ConversationID(userID, otherID)
	list, err := s.store.Conversation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if list == nil {
		list = []models.Message{}
	}
	return &ConversationResponse{ConversationID: id, Results: len(list), Messages: list}, nil
}

// Conversations lists the caller's threads, most recently active first.
func (s *MessageService) Conversations(ctx context.Context, userID uuid.UUID) (*ConversationsResponse, error) {
	latest, err := s.store.Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}
	unread, err := s.store.Unread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	counts := make(map[string]int64, len(unread))
	for _, u := range unread {
		counts[u.ConversationID] = u.Count
	}

	out := make([]ConversationSummary, 0, len(latest))
	for _, m := range latest {
		summary := ConversationSummary{
			ConversationID: m.ConversationID,
			LastMessage:    m,
			UnreadCount:    counts[m.ConversationID],
		}
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		if u, err := s.users.FindByID(ctx, other); err == nil {
			summary.Participant = participantOf(u)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("conversation participant lookup failed", "user_id", other.String(), "error", err.Error())
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})

	return &ConversationsResponse{Results: len(out), Conversations: out}, nil
}

func (s *MessageService) find(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	m, err := s.store.Find(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load message: %w", err)
	}
	return m, nil
}

func (s *MessageService) emit(userID uuid.UUID, event string, payload interface{}) {
	if s.realtime == nil {
		return
	}
	s.realtime.Emit(userID.String(), event, payload)
}
