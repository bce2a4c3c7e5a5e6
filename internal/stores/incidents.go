package stores

import (
	"errors"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/apperrors"
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/gorm"
)

// severityRankExpr orders incidents critical-first in SQL. A CASE expression
// keeps the ordering identical on Postgres and SQLite.
const severityRankExpr = "CASE severity " +
	"WHEN 'critical' THEN 0 " +
	"WHEN 'high' THEN 1 " +
	"WHEN 'medium' THEN 2 " +
	"WHEN 'low' THEN 3 " +
	"ELSE 4 END"

type IncidentStore struct {
	db *gorm.DB
}

func NewIncidentStore(db *gorm.DB) *IncidentStore {
	return &IncidentStore{db: db}
}

func (s *IncidentStore) Create(incident *models.Incident) error {
	return s.db.Create(incident).Error
}

func (s *IncidentStore) ByID(id uint) (*models.Incident, error) {
	var incident models.Incident

	if err := s.db.First(&incident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Incident", id)
		}
		return nil, err
	}

	return &incident, nil
}

func (s *IncidentStore) All() ([]models.Incident, error) {
	var incidents []models.Incident
	err := s.db.Find(&incidents).Error
	return incidents, err
}

func (s *IncidentStore) ByResource(resourceID uint) ([]models.Incident, error) {
	var incidents []models.Incident
	err := s.db.Where("resource_id = ?", resourceID).Find(&incidents).Error
	return incidents, err
}

// Active returns unresolved incidents ordered by severity (critical first),
// then by creation time (oldest first). Operators triage off this ordering.
func (s *IncidentStore) Active() ([]models.Incident, error) {
	var incidents []models.Incident

	err := s.db.Where("status IN ?", types.ActiveIncidentStatuses).
		Order(severityRankExpr + ", created_at ASC").
		Find(&incidents).Error

	return incidents, err
}

func (s *IncidentStore) ActiveCritical() ([]models.Incident, error) {
	var incidents []models.Incident

	err := s.db.Where("severity = ? AND status IN ?", types.SeverityCritical, types.ActiveIncidentStatuses).
		Order("created_at ASC").
		Find(&incidents).Error

	return incidents, err
}

func (s *IncidentStore) CountActive() (int64, error) {
	var count int64

	err := s.db.Model(&models.Incident{}).
		Where("status IN ?", types.ActiveIncidentStatuses).
		Count(&count).Error

	return count, err
}

func (s *IncidentStore) CountActiveCritical() (int64, error) {
	var count int64

	err := s.db.Model(&models.Incident{}).
		Where("severity = ? AND status IN ?", types.SeverityCritical, types.ActiveIncidentStatuses).
		Count(&count).Error

	return count, err
}

func (s *IncidentStore) CountActiveBySeverity() (map[string]int64, error) {
	var rows []struct {
		Label string
		Total int64
	}

	err := s.db.Model(&models.Incident{}).
		Select("severity as label, count(*) as total").
		Where("status IN ?", types.ActiveIncidentStatuses).
		Group("severity").
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

// AvgResolutionMinutesSince averages created-to-resolved minutes over
// incidents created since the given time that have been resolved. Returns nil
// when no incident qualifies; the mean is never fabricated as zero.
// Durations are averaged in Go so the arithmetic is identical on Postgres and
// SQLite.
func (s *IncidentStore) AvgResolutionMinutesSince(since time.Time) (*float64, error) {
	var incidents []models.Incident

	err := s.db.Where("created_at >= ? AND resolved_at IS NOT NULL", since).
		Find(&incidents).Error
	if err != nil {
		return nil, err
	}

	if len(incidents) == 0 {
		return nil, nil
	}

	var totalMinutes float64
	for _, incident := range incidents {
		totalMinutes += incident.ResolvedAt.Sub(incident.CreatedAt).Minutes()
	}

	avg := totalMinutes / float64(len(incidents))
	return &avg, nil
}

func (s *IncidentStore) CountSince(since time.Time) (int64, error) {
	var count int64

	err := s.db.Model(&models.Incident{}).
		Where("created_at >= ?", since).
		Count(&count).Error

	return count, err
}

func (s *IncidentStore) Save(incident *models.Incident) error {
	return s.db.Save(incident).Error
}

func (s *IncidentStore) Delete(incident *models.Incident) error {
	return s.db.Delete(incident).Error
}
