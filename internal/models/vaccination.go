package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VaccinationScheduled = "scheduled"
	VaccinationCompleted = "completed"
	VaccinationMissed    = "missed"
	VaccinationCancelled = "cancelled"
)

var (
	VaccinationStatuses = []string{VaccinationScheduled, VaccinationCompleted, VaccinationMissed, VaccinationCancelled}
	VaccineTypes        = []string{"BCG", "Hepatitis B", "Polio", "DTaP", "Hib", "PCV", "Rotavirus",
		"Measles", "Mumps", "Rubella", "Varicella", "HPV", "Influenza", "Other"}
	AdministrationSites  = []string{"Left Arm", "Right Arm", "Left Thigh", "Right Thigh", "Oral", "Other"}
	SideEffectSeverities = []string{"None", "Mild", "Moderate", "Severe"}
)

type Vaccination struct {
	ID                   uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ChildID              uuid.UUID   `gorm:"type:uuid;not null;index" json:"childId"`
	Child                *Child      `gorm:"foreignKey:ChildID" json:"child,omitempty"`
	VaccineName          string      `gorm:"size:100;not null" json:"vaccineName"`
	VaccineType          string      `gorm:"size:30;default:'Other'" json:"vaccineType"`
	DoseNumber           *int        `json:"doseNumber,omitempty"`
	TotalDoses           *int        `json:"totalDoses,omitempty"`
	VaccineDate          time.Time   `gorm:"not null;index:idx_vaccinations_date_status,priority:1" json:"vaccineDate"`
	NextDoseDate         *time.Time  `json:"nextDoseDate,omitempty"`
	Status               string      `gorm:"size:20;default:'scheduled';index:idx_vaccinations_date_status,priority:2" json:"status"`
	ClinicID             *uuid.UUID  `gorm:"type:uuid" json:"clinicId,omitempty"`
	Clinic               *Clinic     `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	AdministeredBy       string      `gorm:"size:100" json:"administeredBy,omitempty"`
	BatchNumber          string      `gorm:"size:100" json:"batchNumber,omitempty"`
	Manufacturer         string      `gorm:"size:100" json:"manufacturer,omitempty"`
	SiteOfAdministration string      `gorm:"size:20" json:"siteOfAdministration,omitempty"`
	SideEffects          SideEffects `gorm:"embedded;embeddedPrefix:side_effects_" json:"sideEffects"`
	Notes                string      `gorm:"type:text" json:"notes,omitempty"`
	Document             Asset       `gorm:"embedded;embeddedPrefix:document_" json:"document"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

type SideEffects struct {
	Reported    bool   `gorm:"not null" json:"reported"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Severity    string `gorm:"size:20" json:"severity,omitempty" validate:"omitempty,severity"`
}
