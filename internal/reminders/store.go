package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TriggerScan tags notifications produced by the reminder scan so later runs
// can recognise them.
const TriggerScan = "reminder_scan"

type Store interface {
	// DueVaccinations returns scheduled vaccinations dated within [from, to]
	// with their child and the child's parent loaded.
	DueVaccinations(ctx context.Context, from, to time.Time) ([]models.Vaccination, error)
	// RecentlyReminded reports whether the scan already notified userID
	// about the vaccination at or after since.
	RecentlyReminded(ctx context.Context, userID, vaccinationID uuid.UUID, since time.Time) (bool, error)
	// DueAppointments returns confirmed appointments within [from, to] whose
	// reminder has not been sent.
	DueAppointments(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	// ClaimAppointment flips the reminder flag in a single conditional
	// update. It reports false when another run already claimed it.
	ClaimAppointment(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DueVaccinations(ctx context.Context, from, to time.Time) ([]models.Vaccination, error) {
	var list []models.Vaccination
	err := s.db.WithContext(ctx).
		Preload("Child.Parent").
		Where("status = ? AND vaccine_date BETWEEN ? AND ?", models.VaccinationScheduled, from, to).
		Order("vaccine_date ASC").
		Find(&list).Error
	return list, err
}

func (s *gormStore) RecentlyReminded(ctx context.Context, userID, vaccinationID uuid.UUID, since time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND created_at >= ?", userID, models.NotificationVaccinationReminder, since).
		Where(datatypes.JSONQuery("data").Equals(vaccinationID.String(), "vaccinationId")).
		Where(datatypes.JSONQuery("data").Equals(TriggerScan, "trigger")).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) DueAppointments(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var list []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Child").
		Preload("Parent").
		Where("status = ? AND reminder_sent = ? AND appointment_date BETWEEN ? AND ?",
			models.AppointmentConfirmed, false, from, to).
		Order("appointment_date ASC").
		Find(&list).Error
	return list, err
}

func (s *gormStore) ClaimAppointment(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		UpdateColumns(map[string]interface{}{
			"reminder_sent":    true,
			"reminder_sent_at": at,
		})
	return result.RowsAffected == 1, result.Error
}
