package vaccinations

import (
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

const upcomingLimit = 10

type CreateVaccinationRequest struct {
	ChildID              string              `json:"childId" validate:"required,uuid"`
	VaccineName          string              `json:"vaccineName" validate:"required,notblank,max=100"`
	VaccineType          string              `json:"vaccineType" validate:"omitempty,vaccinetype"`
	DoseNumber           *int                `json:"doseNumber" validate:"omitempty,min=1"`
	TotalDoses           *int                `json:"totalDoses" validate:"omitempty,min=1"`
	VaccineDate          string              `json:"vaccineDate" validate:"required"`
	NextDoseDate         string              `json:"nextDoseDate"`
	Status               string              `json:"status" validate:"omitempty,vaccinestatus"`
	ClinicID             string              `json:"clinicId" validate:"omitempty,uuid"`
	AdministeredBy       string              `json:"administeredBy" validate:"max=100"`
	BatchNumber          string              `json:"batchNumber" validate:"max=100"`
	Manufacturer         string              `json:"manufacturer" validate:"max=100"`
	SiteOfAdministration string              `json:"siteOfAdministration" validate:"omitempty,adminsite"`
	SideEffects          *models.SideEffects `json:"sideEffects"`
	Notes                string              `json:"notes"`
}

type UpdateVaccinationRequest struct {
	VaccineName          *string             `json:"vaccineName" validate:"omitempty,notblank,max=100"`
	VaccineType          *string             `json:"vaccineType" validate:"omitempty,vaccinetype"`
	DoseNumber           *int                `json:"doseNumber" validate:"omitempty,min=1"`
	TotalDoses           *int                `json:"totalDoses" validate:"omitempty,min=1"`
	VaccineDate          *string             `json:"vaccineDate"`
	NextDoseDate         *string             `json:"nextDoseDate"`
	Status               *string             `json:"status" validate:"omitempty,vaccinestatus"`
	ClinicID             *string             `json:"clinicId" validate:"omitempty,uuid"`
	AdministeredBy       *string             `json:"administeredBy" validate:"omitempty,max=100"`
	BatchNumber          *string             `json:"batchNumber" validate:"omitempty,max=100"`
	Manufacturer         *string             `json:"manufacturer" validate:"omitempty,max=100"`
	SiteOfAdministration *string             `json:"siteOfAdministration" validate:"omitempty,adminsite"`
	SideEffects          *models.SideEffects `json:"sideEffects"`
	Notes                *string             `json:"notes"`
}

// ListFilter narrows a parent's vaccinations.
type ListFilter struct {
	ChildID *uuid.UUID
	Status  string
}

type VaccinationListResponse struct {
	Results      int                  `json:"results"`
	Vaccinations []models.Vaccination `json:"vaccinations"`
}
