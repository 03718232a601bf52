package children

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"gorm.io/gorm"
)

var (
	ErrChildNotFound = errors.New("child not found")
	ErrInvalidBirth  = errors.New("dateOfBirth must be a valid date that is not in the future")
	ErrPhotoRejected = errors.New("photo upload failed")
	ErrPhotoDisabled = errors.New("photo uploads are not configured")
)

type ChildService struct {
	store Store
	media services.MediaStore
	now   func() time.Time
}

func NewChildService(store Store, media services.MediaStore) *ChildService {
	return &ChildService{store: store, media: media, now: time.Now}
}

func (s *ChildService) List(ctx context.Context, parentID uuid.UUID) (*ChildListResponse, error) {
	list, err := s.store.ListByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}

	now := s.now()
	views := make([]ChildView, 0, len(list))
	for _, c := range list {
		views = append(views, newChildView(c, now))
	}
	return &ChildListResponse{Results: len(views), Children: views}, nil
}

func (s *ChildService) Get(ctx context.Context, parentID, id uuid.UUID) (*ChildDetailResponse, error) {
	child, err := s.find(ctx, parentID, id)
	if err != nil {
		return nil, err
	}

	vaccinations, err := s.store.Vaccinations(ctx, child.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vaccinations: %w", err)
	}
	if vaccinations == nil {
		vaccinations = []models.Vaccination{}
	}
	return &ChildDetailResponse{Child: newChildView(*child, s.now()), Vaccinations: vaccinations}, nil
}

// Create stores a new child for parentID. photo may be nil.
func (s *ChildService) Create(ctx context.Context, parentID uuid.UUID, req *CreateChildRequest, photo io.Reader) (*ChildView, error) {
	dob, err := s.birthDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	child := &models.Child{
		ID:             uuid.New(),
		ParentID:       parentID,
		Name:           strings.TrimSpace(req.Name),
		DateOfBirth:    dob,
		Gender:         req.Gender,
		BloodType:      orUnknown(req.BloodType),
		Allergies:      cleanAllergies(req.Allergies),
		MedicalHistory: req.MedicalHistory,
		IsActive:       true,
	}
	if req.EmergencyContact != nil {
		child.EmergencyContact = *req.EmergencyContact
	}

	if photo != nil {
		asset, err := s.upload(ctx, photo)
		if err != nil {
			return nil, err
		}
		child.Photo = asset
	}

	if err := s.store.Create(ctx, child); err != nil {
		s.discard(ctx, child.Photo.PublicID)
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	view := newChildView(*child, s.now())
	return &view, nil
}

// Update applies the provided fields. A new photo replaces the old asset
// once the child is saved; deleting the old asset is best effort.
func (s *ChildService) Update(ctx context.Context, parentID, id uuid.UUID, req *UpdateChildRequest, photo io.Reader) (*ChildView, error) {
	child, err := s.find(ctx, parentID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		child.Name = strings.TrimSpace(*req.Name)
	}
	if req.DateOfBirth != nil {
		dob, err := s.birthDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		child.DateOfBirth = dob
	}
	if req.Gender != nil {
		child.Gender = *req.Gender
	}
	if req.BloodType != nil {
		child.BloodType = orUnknown(*req.BloodType)
	}
	if req.Allergies != nil {
		child.Allergies = cleanAllergies(req.Allergies)
	}
	if req.MedicalHistory != nil {
		child.MedicalHistory = *req.MedicalHistory
	}
	if req.EmergencyContact != nil {
		child.EmergencyContact = *req.EmergencyContact
	}

	replaced := ""
	if photo != nil {
		asset, err := s.upload(ctx, photo)
		if err != nil {
			return nil, err
		}
		replaced = child.Photo.PublicID
		child.Photo = asset
	}

	if err := s.store.Save(ctx, child); err != nil {
		if photo != nil {
			s.discard(ctx, child.Photo.PublicID)
		}
		return nil, fmt.Errorf("failed to update child: %w", err)
	}
	s.discard(ctx, replaced)

	view := newChildView(*child, s.now())
	return &view, nil
}

// Delete deactivates the child. Its records stay for the parent's history.
func (s *ChildService) Delete(ctx context.Context, parentID, id uuid.UUID) error {
	child, err := s.find(ctx, parentID, id)
	if err != nil {
		return err
	}

	child.IsActive = false
	if err := s.store.Save(ctx, child); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

func (s *ChildService) find(ctx context.Context, parentID, id uuid.UUID) (*models.Child, error) {
	child, err := s.store.FindOwned(ctx, id, parentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load child: %w", err)
	}
	return child, nil
}

func (s *ChildService) birthDate(raw string) (time.Time, error) {
	dob, err := dto.ParseDate(raw)
	if err != nil || dob.After(s.now()) {
		return time.Time{}, ErrInvalidBirth
	}
	return dob, nil
}

func (s *ChildService) upload(ctx context.Context, photo io.Reader) (models.Asset, error) {
	asset, err := s.media.Upload(ctx, photo, photoFolder)
	if errors.Is(err, services.ErrChannelDisabled) {
		return models.Asset{}, ErrPhotoDisabled
	}
	if err != nil {
		slog.Error("child photo upload failed", "error", err.Error())
		return models.Asset{}, ErrPhotoRejected
	}
	return asset, nil
}

// discard removes an asset that no stored child references.
func (s *ChildService) discard(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.media.Delete(ctx, publicID); err != nil {
		slog.Warn("failed to delete child photo", "public_id", publicID, "error", err.Error())
	}
}

func orUnknown(bloodType string) string {
	if bloodType == "" {
		return "Unknown"
	}
	return bloodType
}

func cleanAllergies(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
