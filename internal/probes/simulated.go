package probes

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
)

// SimulatedProber fabricates probe outcomes with a fixed distribution:
// 80% up, 10% degraded, 7% down, 3% timeout. The unreachable outcome is
// defined but never rolled. A production deployment replaces this with a
// prober that performs real network checks.
type SimulatedProber struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedProber() *SimulatedProber {
	return &SimulatedProber{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededProber returns a prober with a deterministic outcome sequence.
func NewSeededProber(seed int64) *SimulatedProber {
	return &SimulatedProber{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (p *SimulatedProber) Probe(ctx context.Context, resource *models.Resource) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p.mu.Lock()
	roll := p.rng.Intn(100)
	status := rollStatus(roll)
	responseTime := p.responseTime(status)
	p.mu.Unlock()

	return Result{
		Status:         status,
		ResponseTimeMs: responseTime,
		StatusCode:     statusCode(status),
		Message:        StatusMessage(status, resource.Name),
	}, nil
}

func rollStatus(roll int) types.HealthStatus {
	switch {
	case roll < 80:
		return types.HealthStatusUp
	case roll < 90:
		return types.HealthStatusDegraded
	case roll < 97:
		return types.HealthStatusDown
	default:
		return types.HealthStatusTimeout
	}
}

// responseTime synthesizes a latency for the outcome: 20-200ms when up,
// 500-2500ms when degraded, a fixed 30s on timeout, zero otherwise.
// Callers must hold p.mu.
func (p *SimulatedProber) responseTime(status types.HealthStatus) int {
	switch status {
	case types.HealthStatusUp:
		return 20 + p.rng.Intn(180)
	case types.HealthStatusDegraded:
		return 500 + p.rng.Intn(2000)
	case types.HealthStatusDown:
		return 0
	case types.HealthStatusTimeout:
		return TimeoutResponseTimeMs
	case types.HealthStatusUnreachable:
		return 0
	}
	return 0
}

// TimeoutResponseTimeMs is the latency recorded for a timed-out probe.
const TimeoutResponseTimeMs = 30000

func statusCode(status types.HealthStatus) int {
	switch status {
	case types.HealthStatusUp:
		return 200
	case types.HealthStatusDegraded:
		return 503
	default:
		return 0
	}
}

// StatusMessage renders the human-readable sentence recorded with a check.
func StatusMessage(status types.HealthStatus, resourceName string) string {
	switch status {
	case types.HealthStatusUp:
		return fmt.Sprintf("%s is responding normally", resourceName)
	case types.HealthStatusDegraded:
		return fmt.Sprintf("%s is experiencing high latency", resourceName)
	case types.HealthStatusDown:
		return fmt.Sprintf("%s is not responding", resourceName)
	case types.HealthStatusTimeout:
		return fmt.Sprintf("%s health check timed out", resourceName)
	case types.HealthStatusUnreachable:
		return fmt.Sprintf("%s is unreachable", resourceName)
	}
	return resourceName
}
