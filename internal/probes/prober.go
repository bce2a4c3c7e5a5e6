// Package probes abstracts how a health outcome is obtained for a resource.
// The engine only consumes the Result; swapping the simulator for a real
// network prober does not touch the scheduler or status derivation.
package probes

import (
	"context"

	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
)

// Result is the raw outcome of a single probe.
type Result struct {
	Status         types.HealthStatus
	ResponseTimeMs int
	StatusCode     int
	Message        string
}

// Prober obtains one health outcome for a resource. Implementations must
// respect context cancellation and always return one of the five health
// statuses on success.
type Prober interface {
	Probe(ctx context.Context, resource *models.Resource) (Result, error)
}
