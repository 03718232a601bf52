package clinics

import "github.com/vaxtrack/vaxtrack-backend/internal/models"

const (
	defaultMaxDistance = 10000
	nearbyLimit        = 20
	earthRadiusKm      = 6371.0
)

type CreateClinicRequest struct {
	Name      string               `json:"name" validate:"required,notblank,max=255"`
	Address   models.ClinicAddress `json:"address"`
	Longitude *float64             `json:"longitude" validate:"required,longitude"`
	Latitude  *float64             `json:"latitude" validate:"required,latitude"`
	Contact   models.ClinicContact `json:"contact"`
	Services  []string             `json:"services" validate:"omitempty,dive,clinicservice"`
	Verified  bool                 `json:"verified"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// NearbyClinic is a clinic with its great-circle distance from the query point, in km.
type NearbyClinic struct {
	models.Clinic
	Distance float64 `json:"distance"`
}

type ClinicListResponse struct {
	Results int             `json:"results"`
	Clinics []models.Clinic `json:"clinics"`
}

type NearbyResponse struct {
	Results int            `json:"results"`
	Clinics []NearbyClinic `json:"clinics"`
}
