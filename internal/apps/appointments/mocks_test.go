package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"gorm.io/gorm"
)

var _ Store = (*memStore)(nil)

type memStore struct {
	children     map[uuid.UUID]*models.Child
	clinics      map[uuid.UUID]bool
	vaccinations map[uuid.UUID]uuid.UUID // vaccination -> child
	appointments map[uuid.UUID]*models.Appointment
	saves        int
	// afterFind runs once a copy has been handed out, standing in for a
	// writer that lands between the load and the update.
	afterFind func(id uuid.UUID)
}

func newMemStore() *memStore {
	return &memStore{
		children:     map[uuid.UUID]*models.Child{},
		clinics:      map[uuid.UUID]bool{},
		vaccinations: map[uuid.UUID]uuid.UUID{},
		appointments: map[uuid.UUID]*models.Appointment{},
	}
}

func (s *memStore) List(_ context.Context, parentID uuid.UUID, filter ListFilter, now time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.ParentID != parentID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Upcoming && a.AppointmentDate.Before(now) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *memStore) Find(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	cp.Child = s.children[a.ChildID]
	if s.afterFind != nil {
		s.afterFind(id)
	}
	return &cp, nil
}

func (s *memStore) FindChild(_ context.Context, childID, parentID uuid.UUID) (*models.Child, error) {
	c, ok := s.children[childID]
	if !ok || c.ParentID != parentID || !c.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *memStore) ClinicExists(_ context.Context, clinicID uuid.UUID) (bool, error) {
	return s.clinics[clinicID], nil
}

func (s *memStore) VaccinationBelongs(_ context.Context, vaccinationID, childID uuid.UUID) (bool, error) {
	owner, ok := s.vaccinations[vaccinationID]
	return ok && owner == childID, nil
}

func (s *memStore) Create(_ context.Context, a *models.Appointment) error {
	cp := *a
	s.appointments[a.ID] = &cp
	return nil
}

func (s *memStore) Update(_ context.Context, a *models.Appointment, rearmReminder bool) error {
	s.saves++
	cp := *a
	if stored, ok := s.appointments[a.ID]; ok && !rearmReminder {
		cp.Reminder = stored.Reminder
	}
	s.appointments[a.ID] = &cp
	return nil
}

var _ apps.Notifier = (*recordingNotifier)(nil)

type recordingNotifier struct {
	Err  error
	sent []services.NotificationRequest
}

func (n *recordingNotifier) Notify(_ context.Context, req services.NotificationRequest) (*models.Notification, error) {
	n.sent = append(n.sent, req)
	if n.Err != nil {
		return nil, n.Err
	}
	return &models.Notification{ID: uuid.New(), UserID: req.UserID, Type: req.Type}, nil
}
