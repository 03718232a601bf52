package messages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"gorm.io/gorm"
)

var _ Store = (*memStore)(nil)

type memStore struct {
	messages []*models.Message
}

func (s *memStore) visible() []*models.Message {
	var out []*models.Message
	for _, m := range s.messages {
		if !m.IsDeleted {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) Conversation(_ context.Context, conversationID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.visible() {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memStore) Latest(_ context.Context, userID uuid.UUID) ([]models.Message, error) {
	latest := map[string]models.Message{}
	for _, m := range s.visible() {
		if m.SenderID != userID && m.ReceiverID != userID {
			continue
		}
		if cur, ok := latest[m.ConversationID]; !ok || m.CreatedAt.After(cur.CreatedAt) {
			latest[m.ConversationID] = *m
		}
	}
	out := make([]models.Message, 0, len(latest))
	for _, m := range latest {
		out = append(out, m)
	}
	return out, nil
}

func (s *memStore) Unread(_ context.Context, userID uuid.UUID) ([]UnreadCount, error) {
	counts := map[string]int64{}
	for _, m := range s.visible() {
		if m.ReceiverID == userID && !m.IsRead {
			counts[m.ConversationID]++
		}
	}
	var out []UnreadCount
	for id, n := range counts {
		out = append(out, UnreadCount{ConversationID: id, Count: n})
	}
	return out, nil
}

func (s *memStore) Find(_ context.Context, id uuid.UUID) (*models.Message, error) {
	for _, m := range s.visible() {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) Create(_ context.Context, m *models.Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	s.messages = append(s.messages, &cp)
	return nil
}

func (s *memStore) update(id uuid.UUID, fn func(*models.Message)) {
	for _, m := range s.messages {
		if m.ID == id {
			fn(m)
		}
	}
}

func (s *memStore) MarkRead(_ context.Context, m *models.Message, at time.Time) error {
	s.update(m.ID, func(stored *models.Message) {
		stored.IsRead = true
		stored.ReadAt = &at
	})
	return nil
}

func (s *memStore) SoftDelete(_ context.Context, m *models.Message, at time.Time) error {
	s.update(m.ID, func(stored *models.Message) {
		stored.IsDeleted = true
		stored.DeletedAt = &at
	})
	return nil
}

var _ services.UserFinder = (*memUsers)(nil)

type memUsers map[uuid.UUID]*models.User

func (u memUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := u[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

var _ apps.Broadcaster = (*recordingBroadcaster)(nil)

type emitted struct {
	room    string
	event   string
	payload interface{}
}

type recordingBroadcaster struct {
	events []emitted
}

func (b *recordingBroadcaster) Emit(room, event string, payload interface{}) {
	b.events = append(b.events, emitted{room: room, event: event, payload: payload})
}
