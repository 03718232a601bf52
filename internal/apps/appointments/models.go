package appointments

import (
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

type CreateAppointmentRequest struct {
	ChildID         string `json:"childId" validate:"required,uuid"`
	ClinicID        string `json:"clinicId" validate:"required,uuid"`
	AppointmentDate string `json:"appointmentDate" validate:"required"`
	AppointmentTime string `json:"appointmentTime" validate:"required,datetime=15:04"`
	Purpose         string `json:"purpose" validate:"omitempty,purpose"`
	VaccinationID   string `json:"vaccinationId" validate:"omitempty,uuid"`
	Notes           string `json:"notes" validate:"max=2000"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate *string `json:"appointmentDate"`
	AppointmentTime *string `json:"appointmentTime" validate:"omitempty,datetime=15:04"`
	Purpose         *string `json:"purpose" validate:"omitempty,purpose"`
	Notes           *string `json:"notes" validate:"omitempty,max=2000"`
	Status          *string `json:"status" validate:"omitempty,apptstatus"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

type ListFilter struct {
	Status   string
	Upcoming bool
}

type AppointmentListResponse struct {
	Results      int                  `json:"results"`
	Appointments []models.Appointment `json:"appointments"`
}

// transitions lists the statuses reachable from each status.
var transitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow},
}

func canTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// isOpen reports whether an appointment in status can still change.
func isOpen(status string) bool {
	_, ok := transitions[status]
	return ok
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
