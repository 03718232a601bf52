package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

var channelColumns = map[string]string{
	ChannelEmail: "channel_email_sent_at",
	ChannelSMS:   "channel_sms_sent_at",
}

// NotificationStore is the GORM persistence for notifications. Expired rows
// are hidden from reads until the retention pass deletes them.
type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *NotificationStore) MarkChannelSent(ctx context.Context, id uuid.UUID, channel string, at time.Time) error {
	column, ok := channelColumns[channel]
	if !ok {
		return fmt.Errorf("unknown channel %q", channel)
	}
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		UpdateColumn(column, at).Error
}

func (s *NotificationStore) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int, now time.Time) ([]models.Notification, error) {
	var list []models.Notification
	q := s.db.WithContext(ctx).Scopes(identity.OwnedBy("user_id", userID), notExpired(now))
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Scopes(identity.OwnedBy("user_id", userID), notExpired(now)).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (s *NotificationStore) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) (*models.Notification, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Scopes(identity.OwnedBy("user_id", userID)).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Scopes(identity.OwnedBy("user_id", userID)).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (s *NotificationStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Scopes(identity.OwnedBy("user_id", userID)).
		Where("id = ?", id).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func notExpired(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at IS NULL OR expires_at > ?", now)
	}
}
