package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

var _ UserStore = (*memUserStore)(nil)

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
	saves int
}

func newMemUserStore(users ...*models.User) *memUserStore {
	s := &memUserStore{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) FindBySubject(_ context.Context, subject string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.IdentitySubject == subject {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.users[user.ID] = user
	return nil
}

var _ NotificationWriter = (*memNotificationWriter)(nil)

type memNotificationWriter struct {
	CreateErr error
	created   []*models.Notification
	marked    map[string]time.Time
}

func (w *memNotificationWriter) Create(_ context.Context, n *models.Notification) error {
	if w.CreateErr != nil {
		return w.CreateErr
	}
	w.created = append(w.created, n)
	return nil
}

func (w *memNotificationWriter) MarkChannelSent(_ context.Context, _ uuid.UUID, channel string, at time.Time) error {
	if w.marked == nil {
		w.marked = map[string]time.Time{}
	}
	w.marked[channel] = at
	return nil
}

type recordingMailer struct {
	Err  error
	sent []EmailMessage
}

func (m *recordingMailer) SendEmail(_ context.Context, msg EmailMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type recordingSMS struct {
	Err  error
	sent []string
}

func (s *recordingSMS) SendSMS(_ context.Context, to, body string) error {
	if s.Err != nil {
		return s.Err
	}
	s.sent = append(s.sent, to+"|"+body)
	return nil
}

var errProviderDown = errors.New("provider unavailable")
