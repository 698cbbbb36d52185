package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bloodbank-backend/shared/database/models"
)

// DonationVitals carries the medical readings recorded when a donation is
// completed.
type DonationVitals struct {
	HemoglobinLevel float64
	BloodPressure   string
	PulseRate       int
	Notes           string
}

// DonorMatch is a donor profile joined with the owning user's name and email,
// as returned to requesters looking for compatible donors.
type DonorMatch struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	BloodType        string     `json:"blood_type"`
	IsAvailable      bool       `json:"is_available"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	Location         string     `json:"location"`
	Phone            string     `json:"phone"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
}

// LifecycleStoreContract is the datastore surface the request lifecycle
// manager operates on. InTransaction hands the closure a store bound to one
// transaction; the unit commits when the closure returns nil and rolls back
// on error or panic.
//
// Conditional mutations return the number of rows affected so callers can
// distinguish a missing or wrong-state row without a prior read.
type LifecycleStoreContract interface {
	InTransaction(ctx context.Context, fn func(LifecycleStoreContract) error) error

	CreateRequest(ctx context.Context, request *models.BloodRequest) error
	GetRequestOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID) (*models.BloodRequest, error)
	ApprovePendingRequest(ctx context.Context, requestID uuid.UUID) (int64, error)
	SetRequestStatus(ctx context.Context, requestID uuid.UUID, status string) (int64, error)
	SetRequestStatusOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID, status string) (int64, error)
	SetRequestUrgency(ctx context.Context, requestID uuid.UUID, urgency string) (int64, error)
	DeletePendingRequestOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID) (int64, error)
	PendingRequestsByBloodType(ctx context.Context, bloodType string) ([]models.BloodRequest, error)

	CreateDonation(ctx context.Context, donation *models.Donation) error
	CompleteDonation(ctx context.Context, donationID uuid.UUID, vitals DonationVitals, completedAt time.Time) (int64, error)
	GetDonation(ctx context.Context, donationID uuid.UUID) (*models.Donation, error)

	GetDonorProfile(ctx context.Context, userID uuid.UUID) (*models.DonorProfile, error)
	AvailableDonorsByBloodType(ctx context.Context, bloodType string) ([]DonorMatch, error)
	TouchLastDonationDate(ctx context.Context, donorID uuid.UUID, donatedAt time.Time) error
}
