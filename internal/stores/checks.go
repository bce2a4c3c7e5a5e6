package stores

import (
	"database/sql"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"gorm.io/gorm"
)

type CheckStore struct {
	db *gorm.DB
}

func NewCheckStore(db *gorm.DB) *CheckStore {
	return &CheckStore{db: db}
}

func (s *CheckStore) Create(check *models.HealthCheck) error {
	return s.db.Create(check).Error
}

// LatestForResource returns the newest checks for a resource, most recent
// first.
func (s *CheckStore) LatestForResource(resourceID uint, limit int) ([]models.HealthCheck, error) {
	var checks []models.HealthCheck

	err := s.db.Where("resource_id = ?", resourceID).
		Order("checked_at DESC").
		Limit(limit).
		Find(&checks).Error

	return checks, err
}

// Since returns all checks recorded at or after the given time, across every
// resource, most recent first.
func (s *CheckStore) Since(since time.Time) ([]models.HealthCheck, error) {
	var checks []models.HealthCheck

	err := s.db.Where("checked_at >= ?", since).
		Order("checked_at DESC").
		Find(&checks).Error

	return checks, err
}

func (s *CheckStore) CountSince(since time.Time) (int64, error) {
	var count int64

	err := s.db.Model(&models.HealthCheck{}).
		Where("checked_at >= ?", since).
		Count(&count).Error

	return count, err
}

// AvgResponseTimeSince returns the mean latency of one resource's checks in
// the window, or nil when it has none.
func (s *CheckStore) AvgResponseTimeSince(resourceID uint, since time.Time) (*float64, error) {
	var avg sql.NullFloat64

	err := s.db.Model(&models.HealthCheck{}).
		Select("AVG(response_time_ms)").
		Where("resource_id = ? AND checked_at >= ?", resourceID, since).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	if !avg.Valid {
		return nil, nil
	}

	return &avg.Float64, nil
}

// AvgResponseTimeAllSince is the cross-resource mean latency in the window,
// nil when no checks exist. Nil and zero are distinct: nil means "nothing
// measured".
func (s *CheckStore) AvgResponseTimeAllSince(since time.Time) (*float64, error) {
	var avg sql.NullFloat64

	err := s.db.Model(&models.HealthCheck{}).
		Select("AVG(response_time_ms)").
		Where("checked_at >= ?", since).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	if !avg.Valid {
		return nil, nil
	}

	return &avg.Float64, nil
}

func (s *CheckStore) CountByStatusSince(since time.Time) (map[string]int64, error) {
	var rows []struct {
		Label string
		Total int64
	}

	err := s.db.Model(&models.HealthCheck{}).
		Select("status as label, count(*) as total").
		Where("checked_at >= ?", since).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Total
	}

	return counts, nil
}
