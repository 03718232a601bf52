package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken   = errors.New("email already registered to another account")
	ErrUserNotFound = errors.New("user not found")
)

// AuthService keeps local profiles in step with the external identity provider.
// Credentials never reach this service.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// FindBySubject satisfies middleware.UserResolver.
func (s *AuthService) FindBySubject(ctx context.Context, subject string) (*models.User, error) {
	user, err := s.users.FindBySubject(ctx, subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// SyncProfile creates or refreshes the local profile of subject. The boolean
// reports whether a new profile was created.
func (s *AuthService) SyncProfile(ctx context.Context, subject string, req *dto.SyncProfileRequest) (*models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	owner, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up email: %w", err)
	}
	if err == nil && owner.IdentitySubject != subject {
		return nil, false, ErrEmailTaken
	}

	user, err := s.users.FindBySubject(ctx, subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			ID:              uuid.New(),
			IdentitySubject: subject,
			Email:           email,
			FirstName:       orDefault(req.FirstName, "New"),
			LastName:        orDefault(req.LastName, "User"),
			PhotoURL:        req.PhotoURL,
			Role:            models.RoleParent,
			Preferences:     models.DefaultPreferences(),
			IsActive:        true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("new user synced from identity provider", "user_id", user.ID.String())
		return user, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	user.Email = email
	user.FirstName = orDefault(req.FirstName, user.FirstName)
	user.LastName = orDefault(req.LastName, user.LastName)
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to update user: %w", err)
	}
	return user, false, nil
}

// UpdateProfile applies the non-nil fields of req.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, req *dto.UpdateProfileRequest) (*models.User, error) {
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// Deactivate soft-deletes the account; the row stays for referential integrity.
func (s *AuthService) Deactivate(ctx context.Context, user *models.User) error {
	user.IsActive = false
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}

func orDefault(val, fallback string) string {
	if v := strings.TrimSpace(val); v != "" {
		return v
	}
	return fallback
}
