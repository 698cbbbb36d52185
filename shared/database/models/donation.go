package models

import (
	"time"

	"github.com/google/uuid"
)

// Donation statuses. A donation is created as scheduled when a donor accepts
// a request and moves to completed together with its request; rows are never
// deleted.
const (
	DonationStatusScheduled = "scheduled"
	DonationStatusCompleted = "completed"
)

type Donation struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DonorID         uuid.UUID `json:"donor_id" gorm:"type:uuid;not null;index"`
	RequestID       uuid.UUID `json:"request_id" gorm:"type:uuid;not null;index"`
	DonationDate    time.Time `json:"donation_date"`
	Status          string    `json:"status" gorm:"size:20;not null;default:'scheduled'"`
	HemoglobinLevel float64   `json:"hemoglobin_level"`
	BloodPressure   string    `json:"blood_pressure" gorm:"size:20"`
	PulseRate       int       `json:"pulse_rate"`
	Notes           string    `json:"notes"`

	Donor   User         `json:"-" gorm:"foreignKey:DonorID"`
	Request BloodRequest `json:"-" gorm:"foreignKey:RequestID"`
}
