package children

import (
	"time"

	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

const photoFolder = "vaxtrack/children"

type CreateChildRequest struct {
	Name             string                   `json:"name" form:"name" validate:"required,notblank,max=100"`
	DateOfBirth      string                   `json:"dateOfBirth" form:"dateOfBirth" validate:"required"`
	Gender           string                   `json:"gender" form:"gender" validate:"required,gender"`
	BloodType        string                   `json:"bloodType" form:"bloodType" validate:"omitempty,bloodtype"`
	Allergies        []string                 `json:"allergies" form:"allergies" validate:"omitempty,dive,notblank,max=100"`
	MedicalHistory   string                   `json:"medicalHistory" form:"medicalHistory"`
	EmergencyContact *models.EmergencyContact `json:"emergencyContact" form:"-"`
}

type UpdateChildRequest struct {
	Name             *string                  `json:"name" form:"name" validate:"omitempty,notblank,max=100"`
	DateOfBirth      *string                  `json:"dateOfBirth" form:"dateOfBirth"`
	Gender           *string                  `json:"gender" form:"gender" validate:"omitempty,gender"`
	BloodType        *string                  `json:"bloodType" form:"bloodType" validate:"omitempty,bloodtype"`
	Allergies        []string                 `json:"allergies" form:"allergies" validate:"omitempty,dive,notblank,max=100"`
	MedicalHistory   *string                  `json:"medicalHistory" form:"medicalHistory"`
	EmergencyContact *models.EmergencyContact `json:"emergencyContact" form:"-"`
}

// ChildView adds the derived age fields to a child.
type ChildView struct {
	models.Child
	Age         int `json:"age"`
	AgeInMonths int `json:"ageInMonths"`
}

func newChildView(c models.Child, now time.Time) ChildView {
	return ChildView{Child: c, Age: c.Age(now), AgeInMonths: c.AgeInMonths(now)}
}

type ChildListResponse struct {
	Results  int         `json:"results"`
	Children []ChildView `json:"children"`
}

type ChildDetailResponse struct {
	Child        ChildView            `json:"child"`
	Vaccinations []models.Vaccination `json:"vaccinations"`
}
