package vaccinations

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
	ErrChildNotFound       = errors.New("child not found")
	ErrClinicNotFound      = errors.New("clinic not found")
	ErrVaccinationNotFound = errors.New("vaccination record not found")
)

// DateError reports an unparseable date field.
type DateError struct {
	Field string
}

func (e *DateError) Error() string {
	return e.Field + ": " + dto.ErrInvalidDate.Error()
}

type VaccinationService struct {
	store    Store
	notifier apps.Notifier
	now      func() time.Time
}

func NewVaccinationService(store Store, notifier apps.Notifier) *VaccinationService {
	return &VaccinationService{store: store, notifier: notifier, now: time.Now}
}

func (s *VaccinationService) List(ctx context.Context, parentID uuid.UUID, filter ListFilter) (*VaccinationListResponse, error) {
	list, err := s.store.List(ctx, parentID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaccinations: %w", err)
	}
	return listResponse(list), nil
}

// Upcoming returns the next scheduled vaccinations across all of the parent's children.
func (s *VaccinationService) Upcoming(ctx context.Context, parentID uuid.UUID) (*VaccinationListResponse, error) {
	list, err := s.store.Upcoming(ctx, parentID, s.now(), upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming vaccinations: %w", err)
	}
	return listResponse(list), nil
}

func (s *VaccinationService) Create(ctx context.Context, parentID uuid.UUID, req *CreateVaccinationRequest) (*models.Vaccination, error) {
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

	date, err := dto.ParseDate(req.VaccineDate)
	if err != nil {
		return nil, &DateError{Field: "vaccineDate"}
	}
	next, err := dto.ParseOptionalDate(req.NextDoseDate)
	if err != nil {
		return nil, &DateError{Field: "nextDoseDate"}
	}

	v := &models.Vaccination{
		ID:                   uuid.New(),
		ChildID:              child.ID,
		VaccineName:          strings.TrimSpace(req.VaccineName),
		VaccineType:          orDefault(req.VaccineType, "Other"),
		DoseNumber:           req.DoseNumber,
		TotalDoses:           req.TotalDoses,
		VaccineDate:          date,
		NextDoseDate:         next,
		Status:               orDefault(req.Status, models.VaccinationScheduled),
		AdministeredBy:       req.AdministeredBy,
		BatchNumber:          req.BatchNumber,
		Manufacturer:         req.Manufacturer,
		SiteOfAdministration: req.SiteOfAdministration,
		Notes:                req.Notes,
	}
	if req.SideEffects != nil {
		v.SideEffects = *req.SideEffects
	}
	if req.ClinicID != "" {
		if v.ClinicID, err = s.clinic(ctx, req.ClinicID); err != nil {
			return nil, err
		}
	}

	if err := s.store.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create vaccination: %w", err)
	}

	_, err = s.notifier.Notify(ctx, services.NotificationRequest{
		UserID:   parentID,
		Type:     models.NotificationVaccinationReminder,
		Title:    "Vaccination Scheduled",
		Message:  fmt.Sprintf("%s scheduled for %s", v.VaccineName, child.Name),
		Data:     map[string]interface{}{"vaccinationId": v.ID.String()},
		Priority: models.PriorityMedium,
	})
	if err != nil {
		slog.Error("vaccination created but notification failed", "vaccination_id", v.ID.String(), "error", err.Error())
	}
	return v, nil
}

func (s *VaccinationService) Update(ctx context.Context, parentID, id uuid.UUID, req *UpdateVaccinationRequest) (*models.Vaccination, error) {
	v, err := s.find(ctx, parentID, id)
	if err != nil {
		return nil, err
	}

	if req.VaccineName != nil {
		v.VaccineName = strings.TrimSpace(*req.VaccineName)
	}
	if req.VaccineType != nil {
		v.VaccineType = *req.VaccineType
	}
	if req.DoseNumber != nil {
		v.DoseNumber = req.DoseNumber
	}
	if req.TotalDoses != nil {
		v.TotalDoses = req.TotalDoses
	}
	if req.VaccineDate != nil {
		date, err := dto.ParseDate(*req.VaccineDate)
		if err != nil {
			return nil, &DateError{Field: "vaccineDate"}
		}
		v.VaccineDate = date
	}
	if req.NextDoseDate != nil {
		next, err := dto.ParseOptionalDate(*req.NextDoseDate)
		if err != nil {
			return nil, &DateError{Field: "nextDoseDate"}
		}
		v.NextDoseDate = next
	}
	if req.Status != nil {
		v.Status = *req.Status
	}
	if req.ClinicID != nil {
		if *req.ClinicID == "" {
			v.ClinicID = nil
		} else if v.ClinicID, err = s.clinic(ctx, *req.ClinicID); err != nil {
			return nil, err
		}
	}
	if req.AdministeredBy != nil {
		v.AdministeredBy = *req.AdministeredBy
	}
	if req.BatchNumber != nil {
		v.BatchNumber = *req.BatchNumber
	}
	if req.Manufacturer != nil {
		v.Manufacturer = *req.Manufacturer
	}
	if req.SiteOfAdministration != nil {
		v.SiteOfAdministration = *req.SiteOfAdministration
	}
	if req.SideEffects != nil {
		v.SideEffects = *req.SideEffects
	}
	if req.Notes != nil {
		v.Notes = *req.Notes
	}

	if err := s.store.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to update vaccination: %w", err)
	}
	return v, nil
}

func (s *VaccinationService) Delete(ctx context.Context, parentID, id uuid.UUID) error {
	v, err := s.find(ctx, parentID, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, v); err != nil {
		return fmt.Errorf("failed to delete vaccination: %w", err)
	}
	return nil
}

func (s *VaccinationService) find(ctx context.Context, parentID, id uuid.UUID) (*models.Vaccination, error) {
	v, err := s.store.FindOwned(ctx, id, parentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVaccinationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vaccination: %w", err)
	}
	return v, nil
}

func (s *VaccinationService) clinic(ctx context.Context, raw string) (*uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrClinicNotFound
	}
	ok, err := s.store.ClinicExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up clinic: %w", err)
	}
	if !ok {
		return nil, ErrClinicNotFound
	}
	return &id, nil
}

func listResponse(list []models.Vaccination) *VaccinationListResponse {
	if list == nil {
		list = []models.Vaccination{}
	}
	return &VaccinationListResponse{Results: len(list), Vaccinations: list}
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
