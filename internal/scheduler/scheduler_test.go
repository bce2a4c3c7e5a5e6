package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/db"
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/probes"
	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(t.TempDir()+"/test.db"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	return database
}

func seedResources(t *testing.T, database *gorm.DB, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		resource := models.Resource{
			Name:     fmt.Sprintf("resource-%d", i),
			Type:     types.ResourceTypeComputeInstance,
			Provider: "aws",
			Region:   "us-east-1",
			Status:   types.ResourceStatusUnknown,
		}
		require.NoError(t, database.Create(&resource).Error)
	}
}

// selectiveProber fails for one resource name and succeeds for the rest.
type selectiveProber struct {
	failName string
}

func (p *selectiveProber) Probe(ctx context.Context, resource *models.Resource) (probes.Result, error) {
	if resource.Name == p.failName {
		return probes.Result{}, errors.New("simulated probe crash")
	}
	return probes.Result{
		Status:         types.HealthStatusUp,
		ResponseTimeMs: 42,
		StatusCode:     200,
		Message:        probes.StatusMessage(types.HealthStatusUp, resource.Name),
	}, nil
}

// gatedProber blocks every probe until released.
type gatedProber struct {
	startedOnce sync.Once
	started     chan struct{}
	release     chan struct{}
}

func newGatedProber() *gatedProber {
	return &gatedProber{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (p *gatedProber) Probe(ctx context.Context, resource *models.Resource) (probes.Result, error) {
	p.startedOnce.Do(func() { close(p.started) })

	select {
	case <-p.release:
	case <-ctx.Done():
		return probes.Result{}, ctx.Err()
	}

	return probes.Result{Status: types.HealthStatusUp}, nil
}

func TestRunSweepIsolatesFailures(t *testing.T) {
	database := openTestDB(t)
	seedResources(t, database, 5)

	checks := services.NewHealthCheckService(database, &selectiveProber{failName: "resource-2"})
	resources := services.NewResourceService(database)

	s := NewScheduler(resources, checks, time.Minute)
	s.RunSweep(context.Background())

	// One probe crashed; the other four still produced observations.
	var count int64
	require.NoError(t, database.Model(&models.HealthCheck{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)

	var failed models.Resource
	require.NoError(t, database.Where("name = ?", "resource-2").First(&failed).Error)
	assert.Equal(t, types.ResourceStatusUnknown, failed.Status, "a failed probe leaves the resource untouched")
	assert.Nil(t, failed.LastCheckedAt)

	var probed models.Resource
	require.NoError(t, database.Where("name = ?", "resource-0").First(&probed).Error)
	assert.Equal(t, types.ResourceStatusHealthy, probed.Status)
}

func TestRunSweepEmptyFleetIsNoOp(t *testing.T) {
	database := openTestDB(t)

	checks := services.NewHealthCheckService(database, &selectiveProber{})
	resources := services.NewResourceService(database)

	s := NewScheduler(resources, checks, time.Minute)
	s.RunSweep(context.Background())

	var count int64
	require.NoError(t, database.Model(&models.HealthCheck{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRunSweepSkipsWhileSweepInProgress(t *testing.T) {
	database := openTestDB(t)
	seedResources(t, database, 1)

	prober := newGatedProber()
	checks := services.NewHealthCheckService(database, prober)
	resources := services.NewResourceService(database)

	s := NewScheduler(resources, checks, time.Minute)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.RunSweep(context.Background())
	}()

	<-prober.started

	// A tick arriving mid-sweep is skipped, not queued.
	s.RunSweep(context.Background())

	close(prober.release)
	<-done

	var count int64
	require.NoError(t, database.Model(&models.HealthCheck{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "the overlapping sweep must not double-probe")
}

func TestSchedulerStartStop(t *testing.T) {
	database := openTestDB(t)

	checks := services.NewHealthCheckService(database, &selectiveProber{})
	resources := services.NewResourceService(database)

	s := NewScheduler(resources, checks, time.Hour)
	s.Start()
	s.Stop()
}
