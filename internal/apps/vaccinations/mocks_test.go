package vaccinations

import (
	"context"
	"sort"
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
	vaccinations map[uuid.UUID]*models.Vaccination
}

func newMemStore() *memStore {
	return &memStore{
		children:     map[uuid.UUID]*models.Child{},
		clinics:      map[uuid.UUID]bool{},
		vaccinations: map[uuid.UUID]*models.Vaccination{},
	}
}

func (s *memStore) owned(v *models.Vaccination, parentID uuid.UUID) bool {
	c, ok := s.children[v.ChildID]
	return ok && c.ParentID == parentID && c.IsActive
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

func (s *memStore) List(_ context.Context, parentID uuid.UUID, filter ListFilter) ([]models.Vaccination, error) {
	var out []models.Vaccination
	for _, v := range s.vaccinations {
		if !s.owned(v, parentID) {
			continue
		}
		if filter.ChildID != nil && v.ChildID != *filter.ChildID {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VaccineDate.After(out[j].VaccineDate) })
	return out, nil
}

func (s *memStore) Upcoming(_ context.Context, parentID uuid.UUID, from time.Time, limit int) ([]models.Vaccination, error) {
	var out []models.Vaccination
	for _, v := range s.vaccinations {
		if s.owned(v, parentID) && v.Status == models.VaccinationScheduled && !v.VaccineDate.Before(from) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VaccineDate.Before(out[j].VaccineDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) FindOwned(_ context.Context, id, parentID uuid.UUID) (*models.Vaccination, error) {
	v, ok := s.vaccinations[id]
	if !ok || !s.owned(v, parentID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *memStore) Create(_ context.Context, v *models.Vaccination) error {
	s.vaccinations[v.ID] = v
	return nil
}

func (s *memStore) Save(_ context.Context, v *models.Vaccination) error {
	cp := *v
	s.vaccinations[v.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, v *models.Vaccination) error {
	delete(s.vaccinations, v.ID)
	return nil
}

var _ apps.Notifier = (*recordingNotifier)(nil)

type recordingNotifier struct {
	Err  error
	sent []services.NotificationRequest
}

func (n *recordingNotifier) Notify(_ context.Context, req services.NotificationRequest) (*models.Notification, error) {
	if n.Err != nil {
		return nil, n.Err
	}
	n.sent = append(n.sent, req)
	return &models.Notification{ID: uuid.New(), UserID: req.UserID, Type: req.Type}, nil
}
