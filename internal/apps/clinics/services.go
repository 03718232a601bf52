package clinics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrClinicNotFound = errors.New("clinic not found")
	ErrBadCoordinates = errors.New("longitude and latitude are required")
	ErrBadDistance    = errors.New("maxDistance must be a positive number of meters")
)

type ClinicService struct {
	store Store
}

func NewClinicService(store Store) *ClinicService {
	return &ClinicService{store: store}
}

// List returns active clinics, best rated first, without reviews.
func (s *ClinicService) List(ctx context.Context, search, service string) (*ClinicListResponse, error) {
	list, err := s.store.List(ctx, strings.TrimSpace(search), service)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	for i := range list {
		list[i].Reviews = nil
	}
	if list == nil {
		list = []models.Clinic{}
	}
	return &ClinicListResponse{Results: len(list), Clinics: list}, nil
}

// Nearby returns up to 20 active clinics within maxMeters of the point,
// closest first. Distances are reported in km.
func (s *ClinicService) Nearby(ctx context.Context, lng, lat, maxMeters float64) (*NearbyResponse, error) {
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return nil, ErrBadCoordinates
	}
	if maxMeters <= 0 {
		return nil, ErrBadDistance
	}

	list, err := s.store.Nearby(ctx, lng, lat, maxMeters, nearbyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby clinics: %w", err)
	}

	out := make([]NearbyClinic, 0, len(list))
	for _, c := range list {
		c.Reviews = nil
		out = append(out, NearbyClinic{
			Clinic:   c,
			Distance: round2(haversineKm(lng, lat, c.Longitude, c.Latitude)),
		})
	}
	return &NearbyResponse{Results: len(out), Clinics: out}, nil
}

func (s *ClinicService) Get(ctx context.Context, id uuid.UUID) (*models.Clinic, error) {
	clinic, err := s.store.FindActive(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic: %w", err)
	}
	if clinic.Reviews == nil {
		clinic.Reviews = []models.ClinicReview{}
	}
	return clinic, nil
}

func (s *ClinicService) Create(ctx context.Context, req *CreateClinicRequest) (*models.Clinic, error) {
	clinic := &models.Clinic{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Address:   req.Address,
		Longitude: *req.Longitude,
		Latitude:  *req.Latitude,
		Contact:   req.Contact,
		Services:  req.Services,
		Verified:  req.Verified,
		IsActive:  true,
	}
	if err := s.store.Create(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	return clinic, nil
}

// Review records one review per user and clinic and returns the clinic with
// its updated rating.
func (s *ClinicService) Review(ctx context.Context, userID, clinicID uuid.UUID, req *ReviewRequest) (*models.Clinic, error) {
	review := &models.ClinicReview{
		ID:       uuid.New(),
		ClinicID: clinicID,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
	}

	err := s.store.AddReview(ctx, review)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrClinicNotFound
	case errors.Is(err, ErrDuplicateReview):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	return s.Get(ctx, clinicID)
}
