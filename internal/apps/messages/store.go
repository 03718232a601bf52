package messages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

// UnreadCount is the per-conversation count of unread messages addressed to
// one user.
type UnreadCount struct {
	ConversationID string
	Count          int64
}

type Store interface {
	Conversation(ctx context.Context, conversationID string) ([]models.Message, error)
	// Latest returns the newest non-deleted message of every conversation
	// the user takes part in.
	Latest(ctx context.Context, userID uuid.UUID) ([]models.Message, error)
	Unread(ctx context.Context, userID uuid.UUID) ([]UnreadCount, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Message, error)
	Create(ctx context.Context, m *models.Message) error
	MarkRead(ctx context.Context, m *models.Message, at time.Time) error
	SoftDelete(ctx context.Context, m *models.Message, at time.Time) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

func (s *gormStore) Conversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	var list []models.Message
	err := s.db.WithContext(ctx).
		Scopes(notDeleted).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

const latestSQL = `
SELECT DISTINCT ON (conversation_id) *
FROM messages
WHERE (sender_id = @user OR receiver_id = @user) AND is_deleted = false
ORDER BY conversation_id, created_at DESC`

func (s *gormStore) Latest(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	var list []models.Message
	err := s.db.WithContext(ctx).Raw(latestSQL, map[string]interface{}{"user": userID}).Scan(&list).Error
	return list, err
}

func (s *gormStore) Unread(ctx context.Context, userID uuid.UUID) ([]UnreadCount, error) {
	var counts []UnreadCount
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Select("conversation_id, COUNT(*) AS count").
		Scopes(notDeleted).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Group("conversation_id").
		Scan(&counts).Error
	return counts, err
}

func (s *gormStore) Find(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	var m models.Message
	err := s.db.WithContext(ctx).Scopes(notDeleted).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) Create(ctx context.Context, m *models.Message) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *gormStore) MarkRead(ctx context.Context, m *models.Message, at time.Time) error {
	return s.db.WithContext(ctx).Model(m).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": at,
	}).Error
}

func (s *gormStore) SoftDelete(ctx context.Context, m *models.Message, at time.Time) error {
	return s.db.WithContext(ctx).Model(m).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": at,
	}).Error
}
