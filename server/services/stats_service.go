package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloodbank-backend/shared/apperrors"
)

// StatsCache is the snapshot cache the aggregator reads through. A nil cache
// or a miss falls through to direct computation.
type StatsCache interface {
	GetStats(out interface{}) bool
	SetStats(v interface{})
	InvalidateStats()
}

// UserStats counts accounts by role.
type UserStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalDonors     int64 `json:"total_donors"`
	TotalRequesters int64 `json:"total_requesters"`
}

// RequestStats counts blood requests by lifecycle state. A request counts as
// completed only when a completed donation backs it.
type RequestStats struct {
	TotalRequests       int64 `json:"total_requests"`
	PendingRequests     int64 `json:"pending_requests"`
	CompletedRequests   int64 `json:"completed_requests"`
	SuccessfulDonations int64 `json:"successful_donations"`
}

// BloodTypeStats describes one blood type's donor pool.
type BloodTypeStats struct {
	AvailableDonors     int64 `json:"available_donors"`
	SuccessfulDonations int64 `json:"successful_donations"`
}

// ActivityEntry is one row of the recent-activity feed, tagged with its
// source entity.
type ActivityEntry struct {
	Type      string    `json:"type"`
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	BloodType string    `json:"blood_type"`
	Status    string    `json:"status"`
	Urgency   string    `json:"urgency"`
	Date      time.Time `json:"date"`
}

// Stats is the dashboard snapshot served to admins.
type Stats struct {
	Users                 UserStats                 `json:"users"`
	Requests              RequestStats              `json:"requests"`
	BloodTypeAvailability map[string]BloodTypeStats `json:"blood_type_availability"`
	RecentActivity        []ActivityEntry           `json:"recent_activity"`
}

// StatsService computes read-only rollups for the admin dashboard. It never
// mutates state; a Redis-backed snapshot absorbs repeated reads.
type StatsService struct {
	db    *gorm.DB
	cache StatsCache
}

// NewStatsService creates a stats service. cache may be nil.
func NewStatsService(db *gorm.DB, cache StatsCache) *StatsService {
	return &StatsService{db: db, cache: cache}
}

const userStatsQuery = `
SELECT
  COUNT(*) AS total_users,
  COALESCE(SUM(CASE WHEN role = 'donor' THEN 1 ELSE 0 END), 0) AS total_donors,
  COALESCE(SUM(CASE WHEN role = 'requester' THEN 1 ELSE 0 END), 0) AS total_requesters
FROM users`

const requestStatsQuery = `
SELECT
  COUNT(*) AS total_requests,
  COALESCE(SUM(CASE WHEN br.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_requests,
  COALESCE(SUM(CASE
    WHEN br.status = 'completed'
    AND EXISTS (
      SELECT 1 FROM donations d
      WHERE d.request_id = br.id
      AND d.status = 'completed'
    )
    THEN 1 ELSE 0 END), 0) AS completed_requests
FROM blood_requests br`

const bloodTypeStatsQuery = `
SELECT
  dp.blood_type,
  COUNT(DISTINCT dp.user_id) AS available_donors,
  COUNT(DISTINCT CASE
    WHEN d.status = 'completed'
    THEN d.donor_id
    END) AS successful_donations
FROM donor_profiles dp
LEFT JOIN donations d ON dp.user_id = d.donor_id
WHERE dp.is_available = true
GROUP BY dp.blood_type`

const recentActivityQuery = `
(SELECT
  'request' AS type,
  br.id,
  u.name AS user_name,
  br.blood_type,
  br.status,
  br.urgency,
  br.created_at AS date
FROM blood_requests br
JOIN users u ON br.requester_id = u.id
WHERE br.created_at >= NOW() - INTERVAL '30 days')
UNION ALL
(SELECT
  'donation' AS type,
  d.id,
  u.name AS user_name,
  br.blood_type,
  d.status,
  br.urgency,
  d.donation_date AS date
FROM donations d
JOIN users u ON d.donor_id = u.id
JOIN blood_requests br ON d.request_id = br.id
WHERE d.donation_date >= NOW() - INTERVAL '30 days')
ORDER BY date DESC
LIMIT 10`

type bloodTypeStatsRow struct {
	BloodType           string `json:"blood_type"`
	AvailableDonors     int64  `json:"available_donors"`
	SuccessfulDonations int64  `json:"successful_donations"`
}

// GetStats returns the dashboard snapshot, computing it on a cache miss.
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		var cached Stats
		if s.cache.GetStats(&cached) {
			return &cached, nil
		}
	}

	stats := &Stats{
		BloodTypeAvailability: make(map[string]BloodTypeStats),
		RecentActivity:        []ActivityEntry{},
	}

	if err := s.db.WithContext(ctx).Raw(userStatsQuery).Scan(&stats.Users).Error; err != nil {
		return nil, apperrors.NewInternal("Error fetching statistics", err)
	}

	if err := s.db.WithContext(ctx).Raw(requestStatsQuery).Scan(&stats.Requests).Error; err != nil {
		return nil, apperrors.NewInternal("Error fetching statistics", err)
	}

	var bloodTypeRows []bloodTypeStatsRow
	if err := s.db.WithContext(ctx).Raw(bloodTypeStatsQuery).Scan(&bloodTypeRows).Error; err != nil {
		return nil, apperrors.NewInternal("Error fetching statistics", err)
	}

	for _, row := range bloodTypeRows {
		stats.BloodTypeAvailability[row.BloodType] = BloodTypeStats{
			AvailableDonors:     row.AvailableDonors,
			SuccessfulDonations: row.SuccessfulDonations,
		}
		stats.Requests.SuccessfulDonations += row.SuccessfulDonations
	}

	if err := s.db.WithContext(ctx).Raw(recentActivityQuery).Scan(&stats.RecentActivity).Error; err != nil {
		return nil, apperrors.NewInternal("Error fetching statistics", err)
	}

	if s.cache != nil {
		s.cache.SetStats(stats)
	}

	return stats, nil
}
