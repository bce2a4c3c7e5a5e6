package services

import (
	"context"
	"errors"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/apperrors"
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/probes"
	"github.com/cloudpulse-dev/cloudpulse/internal/stores"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/gorm"
)

// DefaultProbeTimeout bounds a single probe. Expiry is recorded as a timeout
// outcome rather than an error.
const DefaultProbeTimeout = 30 * time.Second

type HealthCheckService struct {
	db           *gorm.DB
	checks       *stores.CheckStore
	prober       probes.Prober
	probeTimeout time.Duration

	// OnCheck, when set, receives every stored check. Used to feed the
	// websocket stream.
	OnCheck func(check models.HealthCheck)
}

func NewHealthCheckService(db *gorm.DB, prober probes.Prober) *HealthCheckService {
	return &HealthCheckService{
		db:           db,
		checks:       stores.NewCheckStore(db),
		prober:       prober,
		probeTimeout: DefaultProbeTimeout,
	}
}

// SetProbeTimeout overrides the per-probe deadline.
func (s *HealthCheckService) SetProbeTimeout(timeout time.Duration) {
	s.probeTimeout = timeout
}

// DeriveResourceStatus maps a probe outcome to the resource status it
// implies. The mapping is total: every outcome has exactly one result.
func DeriveResourceStatus(status types.HealthStatus) types.ResourceStatus {
	switch status {
	case types.HealthStatusUp:
		return types.ResourceStatusHealthy
	case types.HealthStatusDegraded:
		return types.ResourceStatusDegraded
	case types.HealthStatusDown, types.HealthStatusTimeout, types.HealthStatusUnreachable:
		return types.ResourceStatusUnhealthy
	}
	// Not reachable for a valid HealthStatus.
	return types.ResourceStatusUnknown
}

// PerformHealthCheck probes one resource, stores the outcome as an immutable
// check, and updates the resource's status and last-checked timestamp. The
// store-and-update runs as a single transaction so concurrent probes of the
// same resource cannot interleave the two writes.
func (s *HealthCheckService) PerformHealthCheck(ctx context.Context, resource *models.Resource) (*models.HealthCheck, error) {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	result, err := s.prober.Probe(probeCtx, resource)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// A hanging probe counts as a timeout outcome, not a failure.
			result = probes.Result{
				Status:         types.HealthStatusTimeout,
				ResponseTimeMs: probes.TimeoutResponseTimeMs,
				Message:        probes.StatusMessage(types.HealthStatusTimeout, resource.Name),
			}
		} else {
			return nil, &apperrors.ProbeError{ResourceID: resource.ID, Err: err}
		}
	}

	now := time.Now()
	check := models.HealthCheck{
		ResourceID:     resource.ID,
		Status:         result.Status,
		ResponseTimeMs: result.ResponseTimeMs,
		StatusCode:     result.StatusCode,
		Message:        result.Message,
		CheckedAt:      now,
	}

	newStatus := DeriveResourceStatus(result.Status)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&check).Error; err != nil {
			return err
		}

		return tx.Model(&models.Resource{}).
			Where("id = ?", resource.ID).
			Updates(map[string]interface{}{
				"status":          newStatus,
				"last_checked_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	resource.Status = newStatus
	resource.LastCheckedAt = &now

	if s.OnCheck != nil {
		s.OnCheck(check)
	}

	return &check, nil
}

// ChecksForResource returns the latest checks for one resource, newest first.
func (s *HealthCheckService) ChecksForResource(resourceID uint, limit int) ([]models.HealthCheck, error) {
	return s.checks.LatestForResource(resourceID, limit)
}

// RecentChecks returns all checks from the last N hours across resources.
func (s *HealthCheckService) RecentChecks(hours int) ([]models.HealthCheck, error) {
	return s.checks.Since(time.Now().Add(-time.Duration(hours) * time.Hour))
}

// AvgResponseTime returns a resource's mean latency over the last N hours,
// nil when it has no checks in the window.
func (s *HealthCheckService) AvgResponseTime(resourceID uint, hours int) (*float64, error) {
	return s.checks.AvgResponseTimeSince(resourceID, time.Now().Add(-time.Duration(hours)*time.Hour))
}
