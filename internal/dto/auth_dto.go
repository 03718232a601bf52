package dto

import "github.com/vaxtrack/vaxtrack-backend/internal/models"

type SyncProfileRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" validate:"omitempty,max=100"`
	PhotoURL  string `json:"photoUrl" validate:"omitempty,url"`
}

type UpdateProfileRequest struct {
	FirstName   *string                         `json:"firstName" validate:"omitempty,notblank,max=100"`
	LastName    *string                         `json:"lastName" validate:"omitempty,notblank,max=100"`
	Phone       *string                         `json:"phone" validate:"omitempty,e164"`
	Address     *models.Address                 `json:"address"`
	Preferences *models.NotificationPreferences `json:"preferences"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	DB          string `json:"db"`
	Connections int    `json:"connections"`
}
