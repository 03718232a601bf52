package children

import (
	"context"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

// Store reads and writes children. Every lookup is scoped to the parent.
type Store interface {
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.Child, error)
	FindOwned(ctx context.Context, id, parentID uuid.UUID) (*models.Child, error)
	Vaccinations(ctx context.Context, childID uuid.UUID) ([]models.Vaccination, error)
	Create(ctx context.Context, child *models.Child) error
	Save(ctx context.Context, child *models.Child) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.Child, error) {
	var list []models.Child
	err := s.db.WithContext(ctx).
		Scopes(identity.OwnedBy("parent_id", parentID), identity.Active).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (s *gormStore) FindOwned(ctx context.Context, id, parentID uuid.UUID) (*models.Child, error) {
	var child models.Child
	err := s.db.WithContext(ctx).
		Scopes(identity.OwnedBy("parent_id", parentID), identity.Active).
		Where("id = ?", id).
		First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (s *gormStore) Vaccinations(ctx context.Context, childID uuid.UUID) ([]models.Vaccination, error) {
	var list []models.Vaccination
	err := s.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("vaccine_date DESC").
		Find(&list).Error
	return list, err
}

func (s *gormStore) Create(ctx context.Context, child *models.Child) error {
	return s.db.WithContext(ctx).Create(child).Error
}

func (s *gormStore) Save(ctx context.Context, child *models.Child) error {
	return s.db.WithContext(ctx).Save(child).Error
}
