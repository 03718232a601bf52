package vaccinations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

// Store reads and writes vaccinations. Ownership is transitive through the
// child's parent.
type Store interface {
	FindChild(ctx context.Context, childID, parentID uuid.UUID) (*models.Child, error)
	ClinicExists(ctx context.Context, clinicID uuid.UUID) (bool, error)
	List(ctx context.Context, parentID uuid.UUID, filter ListFilter) ([]models.Vaccination, error)
	Upcoming(ctx context.Context, parentID uuid.UUID, from time.Time, limit int) ([]models.Vaccination, error)
	FindOwned(ctx context.Context, id, parentID uuid.UUID) (*models.Vaccination, error)
	Create(ctx context.Context, v *models.Vaccination) error
	Save(ctx context.Context, v *models.Vaccination) error
	Delete(ctx context.Context, v *models.Vaccination) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// ownedChildren restricts vaccinations to active children of parentID.
func ownedChildren(parentID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN children ON children.id = vaccinations.child_id").
			Where("children.parent_id = ? AND children.is_active = ?", parentID, true)
	}
}

func (s *gormStore) FindChild(ctx context.Context, childID, parentID uuid.UUID) (*models.Child, error) {
	var child models.Child
	err := s.db.WithContext(ctx).
		Scopes(identity.OwnedBy("parent_id", parentID), identity.Active).
		Where("id = ?", childID).
		First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (s *gormStore) ClinicExists(ctx context.Context, clinicID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Clinic{}).Where("id = ?", clinicID).Count(&count).Error
	return count > 0, err
}

func (s *gormStore) List(ctx context.Context, parentID uuid.UUID, filter ListFilter) ([]models.Vaccination, error) {
	q := s.db.WithContext(ctx).
		Scopes(ownedChildren(parentID)).
		Preload("Child").
		Preload("Clinic")
	if filter.ChildID != nil {
		q = q.Where("vaccinations.child_id = ?", *filter.ChildID)
	}
	if filter.Status != "" {
		q = q.Where("vaccinations.status = ?", filter.Status)
	}

	var list []models.Vaccination
	err := q.Order("vaccinations.vaccine_date DESC").Find(&list).Error
	return list, err
}

func (s *gormStore) Upcoming(ctx context.Context, parentID uuid.UUID, from time.Time, limit int) ([]models.Vaccination, error) {
	var list []models.Vaccination
	err := s.db.WithContext(ctx).
		Scopes(ownedChildren(parentID)).
		Preload("Child").
		Where("vaccinations.status = ? AND vaccinations.vaccine_date >= ?", models.VaccinationScheduled, from).
		Order("vaccinations.vaccine_date ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (s *gormStore) FindOwned(ctx context.Context, id, parentID uuid.UUID) (*models.Vaccination, error) {
	var v models.Vaccination
	err := s.db.WithContext(ctx).
		Scopes(ownedChildren(parentID)).
		Where("vaccinations.id = ?", id).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *gormStore) Create(ctx context.Context, v *models.Vaccination) error {
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *gormStore) Save(ctx context.Context, v *models.Vaccination) error {
	return s.db.WithContext(ctx).Omit("Child", "Clinic").Save(v).Error
}

func (s *gormStore) Delete(ctx context.Context, v *models.Vaccination) error {
	return s.db.WithContext(ctx).Delete(v).Error
}
