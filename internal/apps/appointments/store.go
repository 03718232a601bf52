package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

type Store interface {
	List(ctx context.Context, parentID uuid.UUID, filter ListFilter, now time.Time) ([]models.Appointment, error)
	// Find loads an appointment regardless of owner so callers can tell
	// a foreign record from a missing one.
	Find(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	FindChild(ctx context.Context, childID, parentID uuid.UUID) (*models.Child, error)
	ClinicExists(ctx context.Context, clinicID uuid.UUID) (bool, error)
	VaccinationBelongs(ctx context.Context, vaccinationID, childID uuid.UUID) (bool, error)
	Create(ctx context.Context, a *models.Appointment) error
	// Update writes the editable columns of a. The reminder columns are
	// written only when rearmReminder is set, so an edit never undoes a
	// concurrent reminder claim.
	Update(ctx context.Context, a *models.Appointment, rearmReminder bool) error
}

var updatableColumns = []string{
	"appointment_date",
	"appointment_time",
	"purpose",
	"notes",
	"status",
	"cancellation_reason",
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context, parentID uuid.UUID, filter ListFilter, now time.Time) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).
		Scopes(identity.OwnedBy("parent_id", parentID)).
		Preload("Child").
		Preload("Clinic")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Upcoming {
		q = q.Where("appointment_date >= ?", now)
	}

	var list []models.Appointment
	err := q.Order("appointment_date ASC").Find(&list).Error
	return list, err
}

func (s *gormStore) Find(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var a models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Child").
		Preload("Clinic").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
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
	err := s.db.WithContext(ctx).Model(&models.Clinic{}).
		Scopes(identity.Active).
		Where("id = ?", clinicID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) VaccinationBelongs(ctx context.Context, vaccinationID, childID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Vaccination{}).
		Where("id = ? AND child_id = ?", vaccinationID, childID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) Create(ctx context.Context, a *models.Appointment) error {
	return s.db.WithContext(ctx).Omit("Child", "Clinic", "Parent").Create(a).Error
}

func (s *gormStore) Update(ctx context.Context, a *models.Appointment, rearmReminder bool) error {
	columns := append([]string{}, updatableColumns...)
	if rearmReminder {
		columns = append(columns, "reminder_sent", "reminder_sent_at")
	}
	return s.db.WithContext(ctx).Model(a).Select(columns).Updates(a).Error
}
