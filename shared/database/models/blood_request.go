package models

import (
	"time"

	"github.com/google/uuid"
)

// Blood request lifecycle states. A request leaves pending through donor
// acceptance (approved), admin completion (completed) or cancellation; no
// transition leaves completed or cancelled.
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

// Urgency tiers, used for match ordering.
const (
	UrgencyNormal    = "normal"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// BloodTypes is the enumerated set of ABO/Rh values accepted everywhere a
// blood type is submitted.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

type BloodRequest struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID uuid.UUID `json:"requester_id" gorm:"type:uuid;not null;index"`
	BloodType   string    `json:"blood_type" gorm:"size:3;not null"`
	Units       int       `json:"units" gorm:"not null"`
	Urgency     string    `json:"urgency" gorm:"size:20;not null;default:'normal'"`
	Location    string    `json:"location" gorm:"size:255;not null"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status" gorm:"size:20;not null;default:'pending'"`
	CreatedAt   time.Time `json:"created_at"`

	Requester User `json:"-" gorm:"foreignKey:RequesterID"`
}

// IsValidBloodType reports whether bloodType is one of the 8 ABO/Rh values.
func IsValidBloodType(bloodType string) bool {
	for _, bt := range BloodTypes {
		if bt == bloodType {
			return true
		}
	}
	return false
}

// IsValidUrgency reports whether urgency is an allowed tier.
func IsValidUrgency(urgency string) bool {
	switch urgency {
	case UrgencyNormal, UrgencyUrgent, UrgencyEmergency:
		return true
	}
	return false
}

// IsValidRequestStatus reports whether status is a known lifecycle state.
func IsValidRequestStatus(status string) bool {
	switch status {
	case RequestStatusPending, RequestStatusApproved, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}
