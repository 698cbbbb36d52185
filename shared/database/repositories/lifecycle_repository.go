package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloodbank-backend/shared/database/models"
)

// urgencyRank orders the urgency enum by severity. The column is a varchar,
// so a plain ORDER BY would sort alphabetically and put urgent above
// emergency.
const urgencyRank = "CASE urgency WHEN 'emergency' THEN 3 WHEN 'urgent' THEN 2 ELSE 1 END"

// LifecycleRepository is the GORM-backed implementation of
// LifecycleStoreContract.
type LifecycleRepository struct {
	db *gorm.DB
}

var _ LifecycleStoreContract = (*LifecycleRepository)(nil)

func NewLifecycleRepository(db *gorm.DB) *LifecycleRepository {
	return &LifecycleRepository{db: db}
}

// InTransaction runs fn against a store bound to a single transaction.
func (r *LifecycleRepository) InTransaction(ctx context.Context, fn func(LifecycleStoreContract) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LifecycleRepository{db: tx})
	})
}

func (r *LifecycleRepository) CreateRequest(ctx context.Context, request *models.BloodRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *LifecycleRepository) GetRequestOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID) (*models.BloodRequest, error) {
	var request models.BloodRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ?", requestID, requesterID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ApprovePendingRequest flips a request from pending to approved. The status
// guard doubles as the serialization contract: two donors racing on the same
// request cannot both see an affected row.
func (r *LifecycleRepository) ApprovePendingRequest(ctx context.Context, requestID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BloodRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
		Update("status", models.RequestStatusApproved)
	return result.RowsAffected, result.Error
}

func (r *LifecycleRepository) SetRequestStatus(ctx context.Context, requestID uuid.UUID, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BloodRequest{}).
		Where("id = ?", requestID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *LifecycleRepository) SetRequestStatusOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BloodRequest{}).
		Where("id = ? AND requester_id = ?", requestID, requesterID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *LifecycleRepository) SetRequestUrgency(ctx context.Context, requestID uuid.UUID, urgency string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BloodRequest{}).
		Where("id = ?", requestID).
		Update("urgency", urgency)
	return result.RowsAffected, result.Error
}

func (r *LifecycleRepository) DeletePendingRequestOwnedBy(ctx context.Context, requestID, requesterID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ? AND status = ?", requestID, requesterID, models.RequestStatusPending).
		Delete(&models.BloodRequest{})
	return result.RowsAffected, result.Error
}

// PendingRequestsByBloodType returns open requests for one blood type,
// most urgent first, oldest first within a tier.
func (r *LifecycleRepository) PendingRequestsByBloodType(ctx context.Context, bloodType string) ([]models.BloodRequest, error) {
	var requests []models.BloodRequest
	err := r.db.WithContext(ctx).
		Where("blood_type = ? AND status = ?", bloodType, models.RequestStatusPending).
		Order(urgencyRank + " DESC, created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *LifecycleRepository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *LifecycleRepository) CompleteDonation(ctx context.Context, donationID uuid.UUID, vitals DonationVitals, completedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ?", donationID).
		Updates(map[string]interface{}{
			"status":           models.DonationStatusCompleted,
			"hemoglobin_level": vitals.HemoglobinLevel,
			"blood_pressure":   vitals.BloodPressure,
			"pulse_rate":       vitals.PulseRate,
			"notes":            vitals.Notes,
			"donation_date":    completedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *LifecycleRepository) GetDonation(ctx context.Context, donationID uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).
		Where("id = ?", donationID).
		First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *LifecycleRepository) GetDonorProfile(ctx context.Context, userID uuid.UUID) (*models.DonorProfile, error) {
	var profile models.DonorProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *LifecycleRepository) AvailableDonorsByBloodType(ctx context.Context, bloodType string) ([]DonorMatch, error) {
	var matches []DonorMatch
	err := r.db.WithContext(ctx).
		Table("donor_profiles").
		Select("donor_profiles.*, users.name, users.email").
		Joins("JOIN users ON users.id = donor_profiles.user_id").
		Where("donor_profiles.blood_type = ? AND donor_profiles.is_available = ?", bloodType, true).
		Scan(&matches).Error
	return matches, err
}

func (r *LifecycleRepository) TouchLastDonationDate(ctx context.Context, donorID uuid.UUID, donatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.DonorProfile{}).
		Where("user_id = ?", donorID).
		Update("last_donation_date", donatedAt).Error
}
