package services

import (
	"math"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/stores"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/gorm"
)

// DashboardSummary is the executive view of infrastructure health.
type DashboardSummary struct {
	TotalResources     int64   `json:"total_resources"`
	HealthyResources   int64   `json:"healthy_resources"`
	UnhealthyResources int64   `json:"unhealthy_resources"`
	DegradedResources  int64   `json:"degraded_resources"`
	OverallHealthPct   float64 `json:"overall_health_percent"`

	ActiveIncidents   int64    `json:"active_incidents"`
	CriticalIncidents int64    `json:"critical_incidents"`
	IncidentsLast24h  int64    `json:"incidents_last_24h"`
	MTTRMinutes       *float64 `json:"mttr_minutes"`

	HealthChecksLast24h int64    `json:"health_checks_last_24h"`
	AvgResponseTimeMs   *float64 `json:"avg_response_time_ms"`

	ResourcesByType     map[string]int64 `json:"resources_by_type"`
	ResourcesByRegion   map[string]int64 `json:"resources_by_region"`
	ResourcesByStatus   map[string]int64 `json:"resources_by_status"`
	IncidentsBySeverity map[string]int64 `json:"incidents_by_severity"`
	ChecksByStatus      map[string]int64 `json:"checks_by_status_last_24h"`
}

// DashboardService computes point-in-time statistics over the other stores.
// It is strictly read-only.
type DashboardService struct {
	resources *stores.ResourceStore
	checks    *stores.CheckStore
	incidents *stores.IncidentStore
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		resources: stores.NewResourceStore(db),
		checks:    stores.NewCheckStore(db),
		incidents: stores.NewIncidentStore(db),
	}
}

func (s *DashboardService) Summary() (*DashboardSummary, error) {
	total, err := s.resources.Count()
	if err != nil {
		return nil, err
	}

	healthy, err := s.resources.CountByStatus(types.ResourceStatusHealthy)
	if err != nil {
		return nil, err
	}

	degraded, err := s.resources.CountByStatus(types.ResourceStatusDegraded)
	if err != nil {
		return nil, err
	}

	unhealthy, err := s.resources.CountUnhealthy()
	if err != nil {
		return nil, err
	}

	healthPct := 0.0
	if total > 0 {
		healthPct = round2(float64(healthy) / float64(total) * 100)
	}

	activeIncidents, err := s.incidents.CountActive()
	if err != nil {
		return nil, err
	}

	criticalIncidents, err := s.incidents.CountActiveCritical()
	if err != nil {
		return nil, err
	}

	last24h := time.Now().Add(-24 * time.Hour)

	incidentsLast24h, err := s.incidents.CountSince(last24h)
	if err != nil {
		return nil, err
	}

	mttr, err := s.incidents.AvgResolutionMinutesSince(last24h)
	if err != nil {
		return nil, err
	}

	checksLast24h, err := s.checks.CountSince(last24h)
	if err != nil {
		return nil, err
	}

	// Nil when no checks exist in the window; never reported as zero.
	avgResponse, err := s.checks.AvgResponseTimeAllSince(last24h)
	if err != nil {
		return nil, err
	}

	byType, err := s.resources.CountGroupedByType()
	if err != nil {
		return nil, err
	}

	byRegion, err := s.resources.CountGroupedByRegion()
	if err != nil {
		return nil, err
	}

	byStatus, err := s.resources.CountGroupedByStatus()
	if err != nil {
		return nil, err
	}

	bySeverity, err := s.incidents.CountActiveBySeverity()
	if err != nil {
		return nil, err
	}

	checksByStatus, err := s.checks.CountByStatusSince(last24h)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalResources:      total,
		HealthyResources:    healthy,
		UnhealthyResources:  unhealthy,
		DegradedResources:   degraded,
		OverallHealthPct:    healthPct,
		ActiveIncidents:     activeIncidents,
		CriticalIncidents:   criticalIncidents,
		IncidentsLast24h:    incidentsLast24h,
		MTTRMinutes:         mttr,
		HealthChecksLast24h: checksLast24h,
		AvgResponseTimeMs:   avgResponse,
		ResourcesByType:     byType,
		ResourcesByRegion:   byRegion,
		ResourcesByStatus:   byStatus,
		IncidentsBySeverity: bySeverity,
		ChecksByStatus:      checksByStatus,
	}, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
