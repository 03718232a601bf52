package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	Genders    = []string{"Male", "Female", "Other"}
	BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-", "Unknown"}
)

type Child struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParentID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"parentId"`
	Parent           *User            `gorm:"foreignKey:ParentID" json:"-"`
	Name             string           `gorm:"size:100;not null" json:"name"`
	DateOfBirth      time.Time        `gorm:"not null" json:"dateOfBirth"`
	Gender           string           `gorm:"size:10;not null" json:"gender"`
	BloodType        string           `gorm:"size:10;default:'Unknown'" json:"bloodType"`
	Photo            Asset            `gorm:"embedded;embeddedPrefix:photo_" json:"photo"`
	Allergies        pq.StringArray   `gorm:"type:text[]" json:"allergies"`
	MedicalHistory   string           `gorm:"type:text" json:"medicalHistory,omitempty"`
	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergencyContact"`
	IsActive         bool             `gorm:"not null;index" json:"isActive"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Asset references a file held by the media host.
type Asset struct {
	URL      string `gorm:"type:text" json:"url,omitempty"`
	PublicID string `gorm:"size:255" json:"publicId,omitempty"`
}

type EmergencyContact struct {
	Name         string `gorm:"size:100" json:"name,omitempty"`
	Relationship string `gorm:"size:50" json:"relationship,omitempty"`
	Phone        string `gorm:"size:30" json:"phone,omitempty"`
}

// Age returns the child's age in whole years at now.
func (c *Child) Age(now time.Time) int {
	dob := c.DateOfBirth.In(now.Location())
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// AgeInMonths counts calendar months between birth and now, ignoring days.
func (c *Child) AgeInMonths(now time.Time) int {
	dob := c.DateOfBirth.In(now.Location())
	return (now.Year()-dob.Year())*12 + int(now.Month()) - int(dob.Month())
}
