package services

import (
	"context"
	"testing"

	"github.com/cloudpulse-dev/cloudpulse/db"
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/probes"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"github.com/glebarez/sqlite"
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

func createResource(t *testing.T, database *gorm.DB, name string, status types.ResourceStatus) *models.Resource {
	t.Helper()

	resource := &models.Resource{
		Name:     name,
		Type:     types.ResourceTypeComputeInstance,
		Provider: "aws",
		Region:   "us-east-1",
		Status:   status,
	}
	require.NoError(t, database.Create(resource).Error)

	return resource
}

// stubProber returns a fixed result or error for every probe.
type stubProber struct {
	result probes.Result
	err    error
}

func (p *stubProber) Probe(ctx context.Context, resource *models.Resource) (probes.Result, error) {
	if p.err != nil {
		return probes.Result{}, p.err
	}
	return p.result, nil
}

// hangingProber blocks until the probe context expires.
type hangingProber struct{}

func (p *hangingProber) Probe(ctx context.Context, resource *models.Resource) (probes.Result, error) {
	<-ctx.Done()
	return probes.Result{}, ctx.Err()
}
