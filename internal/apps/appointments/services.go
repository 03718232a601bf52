package appointments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotOwner            = errors.New("not authorized to modify this appointment")
	ErrChildNotFound       = errors.New("child not found")
	ErrClinicNotFound      = errors.New("clinic not found")
	ErrVaccinationMismatch = errors.New("vaccination does not belong to this child")
	ErrInvalidTransition   = errors.New("status change not allowed")
	ErrAppointmentClosed   = errors.New("appointment is already closed")
	ErrDateInPast          = errors.New("appointmentDate cannot be in the past")
)

type AppointmentService struct {
	store    Store
	notifier apps.Notifier
	now      func() time.Time
}

func NewAppointmentService(store Store, notifier apps.Notifier) *AppointmentService {
	return &AppointmentService{store: store, notifier: notifier, now: time.Now}
}

func (s *AppointmentService) List(ctx context.Context, parentID uuid.UUID, filter ListFilter) (*AppointmentListResponse, error) {
	list, err := s.store.List(ctx, parentID, filter, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if list == nil {
		list = []models.Appointment{}
	}
	return &AppointmentListResponse{Results: len(list), Appointments: list}, nil
}

// Get hides foreign appointments behind not-found.
func (s *AppointmentService) Get(ctx context.Context, parentID, id uuid.UUID) (*models.Appointment, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ParentID != parentID {
		return nil, ErrAppointmentNotFound
	}
	return a, nil
}

func (s *AppointmentService) Create(ctx context.Context, parentID uuid.UUID, req *CreateAppointmentRequest) (*models.Appointment, error) {
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return nil, ErrChildNotFound
	}
	child, err := s.store.FindChild(ctx, childID, parentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load child: %w", err)
	}

	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, ErrClinicNotFound
	}
	ok, err := s.store.ClinicExists(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up clinic: %w", err)
	}
	if !ok {
		return nil, ErrClinicNotFound
	}

	vaccinationID, err := parseOptionalUUID(req.VaccinationID)
	if err != nil {
		return nil, ErrVaccinationMismatch
	}
	if vaccinationID != nil {
		ok, err := s.store.VaccinationBelongs(ctx, *vaccinationID, child.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up vaccination: %w", err)
		}
		if !ok {
			return nil, ErrVaccinationMismatch
		}
	}

	date, err := s.appointmentDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	a := &models.Appointment{
		ID:              uuid.New(),
		ParentID:        parentID,
		ChildID:         child.ID,
		ClinicID:        clinicID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Purpose:         orDefault(req.Purpose, "Vaccination"),
		VaccinationID:   vaccinationID,
		Notes:           strings.TrimSpace(req.Notes),
		Status:          models.AppointmentPending,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.notify(ctx, a, "Appointment Booked", fmt.Sprintf("Appointment scheduled for %s", child.Name))
	return a, nil
}

// Update applies field changes and at most one status transition. Moving
// the date or time re-arms the reminder.
func (s *AppointmentService) Update(ctx context.Context, parentID, id uuid.UUID, req *UpdateAppointmentRequest) (*models.Appointment, error) {
	a, err := s.owned(ctx, parentID, id)
	if err != nil {
		return nil, err
	}
	if !isOpen(a.Status) {
		return nil, ErrAppointmentClosed
	}

	rescheduled := false
	if req.AppointmentDate != nil {
		date, err := s.appointmentDate(*req.AppointmentDate)
		if err != nil {
			return nil, err
		}
		rescheduled = rescheduled || !date.Equal(a.AppointmentDate)
		a.AppointmentDate = date
	}
	if req.AppointmentTime != nil {
		rescheduled = rescheduled || *req.AppointmentTime != a.AppointmentTime
		a.AppointmentTime = *req.AppointmentTime
	}
	if req.Purpose != nil {
		a.Purpose = *req.Purpose
	}
	if req.Notes != nil {
		a.Notes = strings.TrimSpace(*req.Notes)
	}

	confirmed := false
	if req.Status != nil && *req.Status != a.Status {
		if !canTransition(a.Status, *req.Status) {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, a.Status, *req.Status)
		}
		confirmed = *req.Status == models.AppointmentConfirmed
		a.Status = *req.Status
	}

	if rescheduled {
		a.Reminder = models.AppointmentReminder{}
	}

	if err := s.store.Update(ctx, a, rescheduled); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if confirmed {
		name := "your child"
		if a.Child != nil {
			name = a.Child.Name
		}
		s.notify(ctx, a, "Appointment Confirmed",
			fmt.Sprintf("Appointment for %s on %s at %s is confirmed", name, a.AppointmentDate.Format("Jan 2, 2006"), a.AppointmentTime))
	}
	return a, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, parentID, id uuid.UUID, reason string) (*models.Appointment, error) {
	a, err := s.owned(ctx, parentID, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(a.Status, models.AppointmentCancelled) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, a.Status, models.AppointmentCancelled)
	}

	a.Status = models.AppointmentCancelled
	a.CancellationReason = strings.TrimSpace(reason)
	if err := s.store.Update(ctx, a, false); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	return a, nil
}

// owned distinguishes a missing appointment from one held by another parent.
func (s *AppointmentService) owned(ctx context.Context, parentID, id uuid.UUID) (*models.Appointment, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ParentID != parentID {
		return nil, ErrNotOwner
	}
	return a, nil
}

func (s *AppointmentService) find(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	a, err := s.store.Find(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return a, nil
}

func (s *AppointmentService) appointmentDate(raw string) (time.Time, error) {
	date, err := dto.ParseDate(raw)
	if err != nil {
		return time.Time{}, dto.ErrInvalidDate
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return time.Time{}, ErrDateInPast
	}
	return date, nil
}

func (s *AppointmentService) notify(ctx context.Context, a *models.Appointment, title, message string) {
	_, err := s.notifier.Notify(ctx, services.NotificationRequest{
		UserID:    a.ParentID,
		Type:      models.NotificationAppointmentConfirmed,
		Title:     title,
		Message:   message,
		Data:      map[string]interface{}{"appointmentId": a.ID.String()},
		Priority:  models.PriorityMedium,
		ActionURL: "/appointments",
	})
	if err != nil {
		slog.Error("appointment notification failed", "appointment_id", a.ID.String(), "error", err.Error())
	}
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
