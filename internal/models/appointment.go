package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no-show"
)

var (
	AppointmentStatuses = []string{AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow}
	AppointmentPurposes = []string{"Vaccination", "Checkup", "Consultation", "Follow-up", "Emergency", "Other"}
)

type Appointment struct {
	ID                 uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParentID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"parentId"`
	Parent             *User               `gorm:"foreignKey:ParentID" json:"-"`
	ChildID            uuid.UUID           `gorm:"type:uuid;not null" json:"childId"`
	Child              *Child              `gorm:"foreignKey:ChildID" json:"child,omitempty"`
	ClinicID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"clinicId"`
	Clinic             *Clinic             `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	AppointmentDate    time.Time           `gorm:"not null;index:idx_appointments_date_status,priority:1" json:"appointmentDate"`
	AppointmentTime    string              `gorm:"size:20;not null" json:"appointmentTime"`
	Purpose            string              `gorm:"size:30;default:'Vaccination'" json:"purpose"`
	VaccinationID      *uuid.UUID          `gorm:"type:uuid" json:"vaccinationId,omitempty"`
	Notes              string              `gorm:"type:text" json:"notes,omitempty"`
	Status             string              `gorm:"size:20;default:'pending';index:idx_appointments_date_status,priority:2" json:"status"`
	CancellationReason string              `gorm:"type:text" json:"cancellationReason,omitempty"`
	Reminder           AppointmentReminder `gorm:"embedded;embeddedPrefix:reminder_" json:"reminder"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// AppointmentReminder is the per-appointment idempotency guard of the reminder scan.
type AppointmentReminder struct {
	Sent   bool       `gorm:"not null" json:"sent"`
	SentAt *time.Time `json:"sentAt,omitempty"`
}
