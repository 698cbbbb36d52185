package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bloodbank-backend/shared/database/models"
)

func openMockRepo(t *testing.T) (*LifecycleRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewLifecycleRepository(db), mock
}

func TestApprovePendingRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("flips only a pending request", func(t *testing.T) {
		repo, mock := openMockRepo(t)
		requestID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "blood_requests" SET "status"=$1 WHERE id = $2 AND status = $3`)).
			WithArgs(models.RequestStatusApproved, requestID, models.RequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows, err := repo.ApprovePendingRequest(ctx, requestID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports zero rows when the request is not pending", func(t *testing.T) {
		repo, mock := openMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "blood_requests" SET "status"=$1`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rows, err := repo.ApprovePendingRequest(ctx, uuid.New())

		require.NoError(t, err)
		assert.Zero(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetRequestStatusOwnedBy(t *testing.T) {
	ctx := context.Background()
	repo, mock := openMockRepo(t)
	requestID := uuid.New()
	requesterID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "blood_requests" SET "status"=$1 WHERE id = $2 AND requester_id = $3`)).
		WithArgs(models.RequestStatusCancelled, requestID, requesterID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.SetRequestStatusOwnedBy(ctx, requestID, requesterID, models.RequestStatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePendingRequestOwnedBy(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes only a pending request of the owner", func(t *testing.T) {
		repo, mock := openMockRepo(t)
		requestID := uuid.New()
		requesterID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "blood_requests" WHERE id = $1 AND requester_id = $2 AND status = $3`)).
			WithArgs(requestID, requesterID, models.RequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows, err := repo.DeletePendingRequestOwnedBy(ctx, requestID, requesterID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("matches nothing once the request left pending", func(t *testing.T) {
		repo, mock := openMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "blood_requests"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rows, err := repo.DeletePendingRequestOwnedBy(ctx, uuid.New(), uuid.New())

		require.NoError(t, err)
		assert.Zero(t, rows)
	})
}

func TestPendingRequestsByBloodType(t *testing.T) {
	ctx := context.Background()
	repo, mock := openMockRepo(t)

	created := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	emergencyID := uuid.New()
	normalID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY CASE urgency WHEN 'emergency' THEN 3 WHEN 'urgent' THEN 2 ELSE 1 END DESC, created_at ASC`)).
		WithArgs("O+", models.RequestStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "blood_type", "units", "urgency", "status", "created_at"}).
			AddRow(emergencyID.String(), "O+", 2, models.UrgencyEmergency, models.RequestStatusPending, created).
			AddRow(normalID.String(), "O+", 1, models.UrgencyNormal, models.RequestStatusPending, created.Add(time.Hour)))

	requests, err := repo.PendingRequestsByBloodType(ctx, "O+")

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, emergencyID, requests[0].ID)
	assert.Equal(t, models.UrgencyEmergency, requests[0].Urgency)
	assert.Equal(t, normalID, requests[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteDonationUpdate(t *testing.T) {
	ctx := context.Background()
	repo, mock := openMockRepo(t)
	donationID := uuid.New()
	completedAt := time.Date(2026, 8, 10, 11, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "donations" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	vitals := DonationVitals{HemoglobinLevel: 14.1, BloodPressure: "118/76", PulseRate: 68}
	rows, err := repo.CompleteDonation(ctx, donationID, vitals, completedAt)

	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTouchLastDonationDate(t *testing.T) {
	ctx := context.Background()
	repo, mock := openMockRepo(t)
	donorID := uuid.New()
	donatedAt := time.Date(2026, 8, 12, 16, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "donor_profiles" SET "last_donation_date"=$1 WHERE user_id = $2`)).
		WithArgs(donatedAt, donorID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.TouchLastDonationDate(ctx, donorID, donatedAt)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when the closure succeeds", func(t *testing.T) {
		repo, mock := openMockRepo(t)
		requestID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "blood_requests" SET "status"=$1`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.InTransaction(ctx, func(tx LifecycleStoreContract) error {
			_, err := tx.SetRequestStatus(ctx, requestID, models.RequestStatusCompleted)
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the closure fails", func(t *testing.T) {
		repo, mock := openMockRepo(t)
		boom := errors.New("unit failed")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := repo.InTransaction(ctx, func(tx LifecycleStoreContract) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
