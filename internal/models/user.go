package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleParent      = "parent"
	RoleDoctor      = "doctor"
	RoleClinicStaff = "clinic_staff"
	RoleAdmin       = "admin"
)

// User is the local profile of an identity-provider account.
type User struct {
	ID              uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IdentitySubject string                  `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Email           string                  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FirstName       string                  `gorm:"size:100;not null" json:"firstName"`
	LastName        string                  `gorm:"size:100;not null" json:"lastName"`
	Phone           string                  `gorm:"size:30" json:"phone,omitempty"`
	Address         Address                 `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	PhotoURL        string                  `gorm:"type:text" json:"photoUrl,omitempty"`
	Role            string                  `gorm:"size:20;default:'parent'" json:"role"`
	Preferences     NotificationPreferences `gorm:"embedded;embeddedPrefix:notify_" json:"preferences"`
	IsActive        bool                    `gorm:"not null" json:"isActive"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

type Address struct {
	Street  string `gorm:"size:255" json:"street,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	State   string `gorm:"size:100" json:"state,omitempty"`
	Country string `gorm:"size:100" json:"country,omitempty"`
	ZipCode string `gorm:"size:20" json:"zipCode,omitempty"`
}

// NotificationPreferences gates the outbound channels of the dispatcher.
type NotificationPreferences struct {
	Email bool `gorm:"not null" json:"email"`
	SMS   bool `gorm:"not null" json:"sms"`
	Push  bool `gorm:"not null" json:"push"`
}

func DefaultPreferences() NotificationPreferences {
	return NotificationPreferences{Email: true, SMS: false, Push: true}
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
