package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bloodbank-backend/shared/database/models"
	"bloodbank-backend/shared/database/repositories"
)

// MockLifecycleStore implements repositories.LifecycleStoreContract with
// overridable functions per method. Methods without an override fail loudly
// by returning a zero value, which keeps tests explicit about what they stub.
type MockLifecycleStore struct {
	InTransactionFunc               func(ctx context.Context, fn func(repositories.LifecycleStoreContract) error) error
	CreateRequestFunc               func(ctx context.Context, request *models.BloodRequest) error
	GetRequestOwnedByFunc           func(ctx context.Context, requestID, requesterID uuid.UUID) (*models.BloodRequest, error)
	ApprovePendingRequestFunc       func(ctx context.Context, requestID uuid.UUID) (int64, error)
	SetRequestStatusFunc            func(ctx context.Context, requestID uuid.UUID, status string) (int64, error)
	SetRequestStatusOwnedByFunc     func(ctx context.Context, requestID, requesterID uuid.UUID, status string) (int64, error)
	SetRequestUrgencyFunc           func(ctx context.Context, requestID uuid.UUID, urgency string) (int64, error)
	DeletePendingRequestOwnedByFunc func(ctx context.Context, requestID, requesterID uuid.UUID) (int64, error)
	PendingRequestsByBloodTypeFunc  func(ctx context.Context, bloodType string) ([]models.BloodRequest, error)
	CreateDonationFunc              func(ctx context.Context, donation *models.Donation) error
	CompleteDonationFunc            func(ctx context.Context, donationID uuid.UUID, vitals repositories.DonationVitals, completedAt time.Time) (int64, error)
	GetDonationFunc                 func(ctx context.Context, donationID uuid.UUID) (*models.Donation, error)
	GetDonorProfileFunc             func(ctx context.Context, userID uuid.UUID) (*models.DonorProfile, error)
	AvailableDonorsByBloodTypeFunc  func(ctx context.Context, bloodType string) ([]repositories.DonorMatch, error)
	TouchLastDonationDateFunc       func(ctx context.Context, donorID uuid.UUID, donatedAt time.Time) error
}

var _ repositories.LifecycleStoreContract = (*MockLifecycleStore)(nil)

func (m *MockLifecycleStore) InTransaction(ctx context.Context, fn func(repositories.LifecycleStoreContract) error) error {
	if m.InTransactionFunc != nil {
		return m.InTransactionFunc(ctx, fn)
	}
	// Default: run the closure against the mock itself, as a committed unit.
	return fn(m)
}

func (m *MockLifecycleStore) CreateRequest(ctx context.Context, request *models.BloodRequest) error {
	if m.CreateRequestFunc != nil {
		return m.CreateRequestFunc(ctx, request)
	}
	return nil
}

func (m *MockLifecycleStore) GetRequestOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID) (*models.BloodRequest, error) {
	if m.GetRequestOwnedByFunc != nil {
		return m.GetRequestOwnedByFunc(ctx, requestID, requesterID)
	}
	return nil, nil
}

func (m *MockLifecycleStore) ApprovePendingRequest(ctx context.Context, requestID uuid.UUID) (int64, error) {
	if m.ApprovePendingRequestFunc != nil {
		return m.ApprovePendingRequestFunc(ctx, requestID)
	}
	return 0, nil
}

func (m *MockLifecycleStore) SetRequestStatus(ctx context.Context, requestID uuid.UUID, status string) (int64, error) {
	if m.SetRequestStatusFunc != nil {
		return m.SetRequestStatusFunc(ctx, requestID, status)
	}
	return 0, nil
}

func (m *MockLifecycleStore) SetRequestStatusOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID, status string) (int64, error) {
	if m.SetRequestStatusOwnedByFunc != nil {
		return m.SetRequestStatusOwnedByFunc(ctx, requestID, requesterID, status)
	}
	return 0, nil
}

func (m *MockLifecycleStore) SetRequestUrgency(ctx context.Context, requestID uuid.UUID, urgency string) (int64, error) {
	if m.SetRequestUrgencyFunc != nil {
		return m.SetRequestUrgencyFunc(ctx, requestID, urgency)
	}
	return 0, nil
}

func (m *MockLifecycleStore) DeletePendingRequestOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID) (int64, error) {
	if m.DeletePendingRequestOwnedByFunc != nil {
		return m.DeletePendingRequestOwnedByFunc(ctx, requestID, requesterID)
	}
	return 0, nil
}

func (m *MockLifecycleStore) PendingRequestsByBloodType(ctx context.Context, bloodType string) ([]models.BloodRequest, error) {
	if m.PendingRequestsByBloodTypeFunc != nil {
		return m.PendingRequestsByBloodTypeFunc(ctx, bloodType)
	}
	return nil, nil
}

func (m *MockLifecycleStore) CreateDonation(ctx context.Context, donation *models.Donation) error {
	if m.CreateDonationFunc != nil {
		return m.CreateDonationFunc(ctx, donation)
	}
	return nil
}

func (m *MockLifecycleStore) CompleteDonation(ctx context.Context, donationID uuid.UUID, vitals repositories.DonationVitals, completedAt time.Time) (int64, error) {
	if m.CompleteDonationFunc != nil {
		return m.CompleteDonationFunc(ctx, donationID, vitals, completedAt)
	}
	return 0, nil
}

func (m *MockLifecycleStore) GetDonation(ctx context.Context, donationID uuid.UUID) (*models.Donation, error) {
	if m.GetDonationFunc != nil {
		return m.GetDonationFunc(ctx, donationID)
	}
	return nil, nil
}

func (m *MockLifecycleStore) GetDonorProfile(ctx context.Context, userID uuid.UUID) (*models.DonorProfile, error) {
	if m.GetDonorProfileFunc != nil {
		return m.GetDonorProfileFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockLifecycleStore) AvailableDonorsByBloodType(ctx context.Context, bloodType string) ([]repositories.DonorMatch, error) {
	if m.AvailableDonorsByBloodTypeFunc != nil {
		return m.AvailableDonorsByBloodTypeFunc(ctx, bloodType)
	}
	return nil, nil
}

func (m *MockLifecycleStore) TouchLastDonationDate(ctx context.Context, donorID uuid.UUID, donatedAt time.Time) error {
	if m.TouchLastDonationDateFunc != nil {
		return m.TouchLastDonationDateFunc(ctx, donorID, donatedAt)
	}
	return nil
}

// MockStatsCache records invalidations and serves canned snapshots.
type MockStatsCache struct {
	GetStatsFunc  func(out interface{}) bool
	SetStatsCalls []interface{}
	Invalidations int
}

var _ StatsCache = (*MockStatsCache)(nil)

func (m *MockStatsCache) GetStats(out interface{}) bool {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(out)
	}
	return false
}

func (m *MockStatsCache) SetStats(v interface{}) {
	m.SetStatsCalls = append(m.SetStatsCalls, v)
}

func (m *MockStatsCache) InvalidateStats() {
	m.Invalidations++
}
