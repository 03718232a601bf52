package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ClinicServices = []string{"Vaccinations", "Pediatrics", "Emergency", "Lab Services",
	"Maternal Health", "General Consultation", "Other"}

// Clinic is a global directory entry; it has no owner.
type Clinic struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null;index" json:"name"`
	Address   ClinicAddress  `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Longitude float64        `gorm:"not null" json:"longitude"`
	Latitude  float64        `gorm:"not null" json:"latitude"`
	Contact   ClinicContact  `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	Services  pq.StringArray `gorm:"type:text[]" json:"services"`
	Rating    ClinicRating   `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	Reviews   []ClinicReview `gorm:"foreignKey:ClinicID" json:"reviews,omitempty"`
	Verified  bool           `gorm:"not null" json:"verified"`
	IsActive  bool           `gorm:"not null;index" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type ClinicAddress struct {
	Street      string `gorm:"size:255" json:"street,omitempty"`
	City        string `gorm:"size:100" json:"city,omitempty"`
	State       string `gorm:"size:100" json:"state,omitempty"`
	Country     string `gorm:"size:100" json:"country,omitempty"`
	ZipCode     string `gorm:"size:20" json:"zipCode,omitempty"`
	FullAddress string `gorm:"type:text" json:"fullAddress,omitempty"`
}

type ClinicContact struct {
	Phone   string `gorm:"size:30" json:"phone,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Website string `gorm:"size:255" json:"website,omitempty"`
}

type ClinicRating struct {
	Average float64 `gorm:"not null" json:"average"`
	Count   int     `gorm:"not null" json:"count"`
}

// ClinicReview allows one review per user per clinic.
type ClinicReview struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClinicID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clinic_reviews_clinic_user" json:"clinicId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clinic_reviews_clinic_user" json:"userId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
