package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"gorm.io/gorm"
)

const listLimit = 50

var ErrNotificationNotFound = errors.New("notification not found")

// Store is the subset of services.NotificationStore the inbox needs.
type Store interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int, now time.Time) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

var _ Store = (*services.NotificationStore)(nil)

type ListResponse struct {
	Results       int                   `json:"results"`
	UnreadCount   int64                 `json:"unreadCount"`
	Notifications []models.Notification `json:"notifications"`
}

type NotificationService struct {
	store Store
	now   func() time.Time
}

func NewNotificationService(store Store) *NotificationService {
	return &NotificationService{store: store, now: time.Now}
}

// List returns the newest notifications of the user. The unread count always
// covers the whole inbox, not just the returned page.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*ListResponse, error) {
	now := s.now()
	list, err := s.store.List(ctx, userID, unreadOnly, listLimit, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := s.store.CountUnread(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	if list == nil {
		list = []models.Notification{}
	}
	return &ListResponse{Results: len(list), UnreadCount: unread, Notifications: list}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error) {
	n, err := s.store.MarkRead(ctx, id, userID, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.store.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.store.Delete(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
