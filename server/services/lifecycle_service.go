package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloodbank-backend/shared/apperrors"
	"bloodbank-backend/shared/database/models"
	"bloodbank-backend/shared/database/repositories"
)

// Caller identifies the authenticated user invoking an operation. The
// lifecycle service enforces role and ownership policy itself so the rules
// hold regardless of how the transport layer is wired.
type Caller struct {
	ID   uuid.UUID
	Role string
}

// CreateRequestInput carries the requester-submitted fields of a new blood
// request.
type CreateRequestInput struct {
	BloodType string
	Units     int
	Urgency   string
	Location  string
	Notes     string
}

// StatsInvalidator drops cached dashboard rollups after a lifecycle mutation.
type StatsInvalidator interface {
	InvalidateStats()
}

// LifecycleService owns every state transition of a blood request and its
// donation. Multi-table transitions run inside one store transaction: either
// all writes commit or none do.
type LifecycleService struct {
	store repositories.LifecycleStoreContract
	stats StatsInvalidator
	now   func() time.Time
}

// NewLifecycleService creates a lifecycle service. stats may be nil when no
// cache is configured.
func NewLifecycleService(store repositories.LifecycleStoreContract, stats StatsInvalidator) *LifecycleService {
	return &LifecycleService{
		store: store,
		stats: stats,
		now:   time.Now,
	}
}

// CreateRequest inserts a new pending blood request owned by the caller.
func (s *LifecycleService) CreateRequest(ctx context.Context, caller Caller, input CreateRequestInput) (*models.BloodRequest, error) {
	if err := s.requireRole(caller, models.RoleRequester); err != nil {
		return nil, err
	}

	if !models.IsValidBloodType(input.BloodType) {
		return nil, apperrors.NewValidationf("Invalid blood type. Must be one of: %s", strings.Join(models.BloodTypes, ", "))
	}
	if !models.IsValidUrgency(input.Urgency) {
		return nil, apperrors.NewValidationf("Invalid urgency level. Must be one of: %s, %s, %s",
			models.UrgencyNormal, models.UrgencyUrgent, models.UrgencyEmergency)
	}
	if input.Units < 1 {
		return nil, apperrors.NewValidation("Units must be a positive integer")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, apperrors.NewValidation("Location is required")
	}

	request := &models.BloodRequest{
		RequesterID: caller.ID,
		BloodType:   input.BloodType,
		Units:       input.Units,
		Urgency:     input.Urgency,
		Location:    input.Location,
		Notes:       input.Notes,
		Status:      models.RequestStatusPending,
	}

	if err := s.store.CreateRequest(ctx, request); err != nil {
		return nil, apperrors.NewInternal("Error creating blood request", err)
	}

	s.invalidateStats()
	return request, nil
}

// AcceptRequest transitions a pending request to approved, creates the
// scheduled donation and stamps the donor's last donation date, as one
// atomic unit. The pending-state guard on the update makes concurrent
// acceptances of the same request mutually exclusive.
func (s *LifecycleService) AcceptRequest(ctx context.Context, caller Caller, requestID uuid.UUID) (*models.Donation, error) {
	if err := s.requireRole(caller, models.RoleDonor); err != nil {
		return nil, err
	}

	var donation *models.Donation
	err := s.store.InTransaction(ctx, func(tx repositories.LifecycleStoreContract) error {
		rows, err := tx.ApprovePendingRequest(ctx, requestID)
		if err != nil {
			return apperrors.NewInternal("Error accepting request", err)
		}
		if rows == 0 {
			return apperrors.NewNotFound("Request not found or not pending")
		}

		acceptedAt := s.now()
		donation = &models.Donation{
			DonorID:      caller.ID,
			RequestID:    requestID,
			DonationDate: acceptedAt,
			Status:       models.DonationStatusScheduled,
		}
		if err := tx.CreateDonation(ctx, donation); err != nil {
			return apperrors.NewInternal("Error accepting request", err)
		}

		if err := tx.TouchLastDonationDate(ctx, caller.ID, acceptedAt); err != nil {
			return apperrors.NewInternal("Error accepting request", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	return donation, nil
}

// CompleteDonation records the medical readings, marks the donation and its
// parent request completed and stamps the donor's last donation date. Any
// failure inside the unit rolls back every write performed so far.
func (s *LifecycleService) CompleteDonation(ctx context.Context, caller Caller, donationID uuid.UUID, vitals repositories.DonationVitals) error {
	if err := s.requireRole(caller, models.RoleAdmin); err != nil {
		return err
	}

	err := s.store.InTransaction(ctx, func(tx repositories.LifecycleStoreContract) error {
		completedAt := s.now()

		rows, err := tx.CompleteDonation(ctx, donationID, vitals, completedAt)
		if err != nil {
			return apperrors.NewInternal("Error completing donation", err)
		}
		if rows == 0 {
			return apperrors.NewNotFound("Donation not found")
		}

		donation, err := tx.GetDonation(ctx, donationID)
		if err != nil {
			return s.notFoundOr(err, "Donation data not found", "Error completing donation")
		}

		if _, err := tx.SetRequestStatus(ctx, donation.RequestID, models.RequestStatusCompleted); err != nil {
			return apperrors.NewInternal("Error completing donation", err)
		}

		if err := tx.TouchLastDonationDate(ctx, donation.DonorID, completedAt); err != nil {
			return apperrors.NewInternal("Error completing donation", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateStats()
	return nil
}

// UpdateRequestStatus is the requester-initiated status change, restricted
// to the caller's own requests. A missing and a foreign request are
// indistinguishable to the caller.
func (s *LifecycleService) UpdateRequestStatus(ctx context.Context, caller Caller, requestID uuid.UUID, status string) error {
	if err := s.requireRole(caller, models.RoleRequester); err != nil {
		return err
	}

	rows, err := s.store.SetRequestStatusOwnedBy(ctx, requestID, caller.ID, status)
	if err != nil {
		return apperrors.NewInternal("Error updating request", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("Request not found or unauthorized")
	}

	s.invalidateStats()
	return nil
}

// AdminSetRequestStatus is the admin override for a request's status.
func (s *LifecycleService) AdminSetRequestStatus(ctx context.Context, caller Caller, requestID uuid.UUID, status string) error {
	if err := s.requireRole(caller, models.RoleAdmin); err != nil {
		return err
	}

	// Approved is reachable only through AcceptRequest, which creates the
	// donation the state implies; an override may not mint it directly.
	switch status {
	case models.RequestStatusPending, models.RequestStatusCompleted, models.RequestStatusCancelled:
	default:
		return apperrors.NewValidation("Invalid status")
	}

	rows, err := s.store.SetRequestStatus(ctx, requestID, status)
	if err != nil {
		return apperrors.NewInternal("Error updating request status", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("Request not found")
	}

	s.invalidateStats()
	return nil
}

// AdminSetRequestPriority updates a request's urgency tier.
func (s *LifecycleService) AdminSetRequestPriority(ctx context.Context, caller Caller, requestID uuid.UUID, urgency string) error {
	if err := s.requireRole(caller, models.RoleAdmin); err != nil {
		return err
	}

	if !models.IsValidUrgency(urgency) {
		return apperrors.NewValidationf("Invalid urgency level. Must be one of: %s, %s, %s",
			models.UrgencyNormal, models.UrgencyUrgent, models.UrgencyEmergency)
	}

	rows, err := s.store.SetRequestUrgency(ctx, requestID, urgency)
	if err != nil {
		return apperrors.NewInternal("Error updating request priority", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("Request not found")
	}

	s.invalidateStats()
	return nil
}

// DeleteRequest removes a request only while it is still pending and only
// for its owning requester. Not-found, not-owned and wrong-state all surface
// the same way.
func (s *LifecycleService) DeleteRequest(ctx context.Context, caller Caller, requestID uuid.UUID) error {
	if err := s.requireRole(caller, models.RoleRequester); err != nil {
		return err
	}

	rows, err := s.store.DeletePendingRequestOwnedBy(ctx, requestID, caller.ID)
	if err != nil {
		return apperrors.NewInternal("Error deleting request", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("Request not found, unauthorized, or cannot be deleted")
	}

	s.invalidateStats()
	return nil
}

// MatchDonors lists available donors whose blood type matches the caller's
// request.
func (s *LifecycleService) MatchDonors(ctx context.Context, caller Caller, requestID uuid.UUID) ([]repositories.DonorMatch, error) {
	if err := s.requireRole(caller, models.RoleRequester); err != nil {
		return nil, err
	}

	request, err := s.store.GetRequestOwnedBy(ctx, requestID, caller.ID)
	if err != nil {
		return nil, s.notFoundOr(err, "Request not found", "Error fetching matched donors")
	}

	matches, err := s.store.AvailableDonorsByBloodType(ctx, request.BloodType)
	if err != nil {
		return nil, apperrors.NewInternal("Error fetching matched donors", err)
	}
	return matches, nil
}

// MatchRequests lists pending requests of the caller's blood type, most
// urgent first, oldest first within a tier.
func (s *LifecycleService) MatchRequests(ctx context.Context, caller Caller) ([]models.BloodRequest, error) {
	if err := s.requireRole(caller, models.RoleDonor); err != nil {
		return nil, err
	}

	profile, err := s.store.GetDonorProfile(ctx, caller.ID)
	if err != nil {
		return nil, s.notFoundOr(err, "Donor profile not found", "Error fetching matching requests")
	}

	requests, err := s.store.PendingRequestsByBloodType(ctx, profile.BloodType)
	if err != nil {
		return nil, apperrors.NewInternal("Error fetching matching requests", err)
	}
	return requests, nil
}

func (s *LifecycleService) requireRole(caller Caller, role string) error {
	if caller.Role != role {
		return apperrors.NewAuthorization("Access denied: insufficient permissions")
	}
	return nil
}

func (s *LifecycleService) notFoundOr(err error, notFoundMessage, internalMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound(notFoundMessage)
	}
	return apperrors.NewInternal(internalMessage, err)
}

func (s *LifecycleService) invalidateStats() {
	if s.stats != nil {
		s.stats.InvalidateStats()
	}
}
