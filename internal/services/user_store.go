package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

// UserStore persists local user profiles. Lookups return gorm.ErrRecordNotFound
// when nothing matches.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindBySubject(ctx context.Context, subject string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

type gormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) FindBySubject(ctx context.Context, subject string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("identity_subject = ?", subject).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormUserStore) Save(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}
