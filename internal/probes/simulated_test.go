package probes

import (
	"context"
	"testing"

	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedProberOutcomes(t *testing.T) {
	prober := NewSeededProber(42)
	resource := &models.Resource{Name: "prod-web-server-01"}

	seen := map[types.HealthStatus]int{}

	for i := 0; i < 1000; i++ {
		result, err := prober.Probe(context.Background(), resource)
		require.NoError(t, err)
		require.True(t, result.Status.IsValid())

		seen[result.Status]++

		switch result.Status {
		case types.HealthStatusUp:
			assert.GreaterOrEqual(t, result.ResponseTimeMs, 20)
			assert.LessOrEqual(t, result.ResponseTimeMs, 200)
			assert.Equal(t, 200, result.StatusCode)
			assert.Equal(t, "prod-web-server-01 is responding normally", result.Message)
		case types.HealthStatusDegraded:
			assert.GreaterOrEqual(t, result.ResponseTimeMs, 500)
			assert.LessOrEqual(t, result.ResponseTimeMs, 2500)
			assert.Equal(t, 503, result.StatusCode)
		case types.HealthStatusDown:
			assert.Zero(t, result.ResponseTimeMs)
			assert.Zero(t, result.StatusCode)
		case types.HealthStatusTimeout:
			assert.Equal(t, TimeoutResponseTimeMs, result.ResponseTimeMs)
			assert.Zero(t, result.StatusCode)
		case types.HealthStatusUnreachable:
			t.Fatal("simulator must never roll unreachable")
		}
	}

	// The distribution is 80/10/7/3; with 1000 rolls every rolled outcome
	// should appear and up should dominate.
	assert.Greater(t, seen[types.HealthStatusUp], 700)
	assert.Greater(t, seen[types.HealthStatusDegraded], 0)
	assert.Greater(t, seen[types.HealthStatusDown], 0)
	assert.Greater(t, seen[types.HealthStatusTimeout], 0)
}

func TestSimulatedProberHonorsCancellation(t *testing.T) {
	prober := NewSimulatedProber()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prober.Probe(ctx, &models.Resource{Name: "web"})
	assert.Error(t, err)
}

func TestStatusMessageCoversAllOutcomes(t *testing.T) {
	outcomes := []types.HealthStatus{
		types.HealthStatusUp,
		types.HealthStatusDown,
		types.HealthStatusDegraded,
		types.HealthStatusTimeout,
		types.HealthStatusUnreachable,
	}

	for _, outcome := range outcomes {
		message := StatusMessage(outcome, "cache-01")
		assert.Contains(t, message, "cache-01")
	}
}
