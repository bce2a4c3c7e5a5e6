package seed

import (
	"testing"

	"github.com/cloudpulse-dev/cloudpulse/db"
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
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

func TestRunPopulatesEmptyDatabase(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, Run(database))

	var resourceCount, incidentCount int64
	require.NoError(t, database.Model(&models.Resource{}).Count(&resourceCount).Error)
	require.NoError(t, database.Model(&models.Incident{}).Count(&incidentCount).Error)

	assert.EqualValues(t, 12, resourceCount)
	assert.EqualValues(t, 3, incidentCount)

	// Acknowledged incidents carry their acknowledgement timestamp.
	var acked []models.Incident
	require.NoError(t, database.Where("status = ?", types.IncidentStatusAcknowledged).Find(&acked).Error)
	require.Len(t, acked, 1)
	assert.NotNil(t, acked[0].AcknowledgedAt)
}

func TestRunIsIdempotent(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, Run(database))
	require.NoError(t, Run(database))

	var resourceCount int64
	require.NoError(t, database.Model(&models.Resource{}).Count(&resourceCount).Error)
	assert.EqualValues(t, 12, resourceCount)
}

func TestRunSkipsPopulatedDatabase(t *testing.T) {
	database := openTestDB(t)

	existing := models.Resource{
		Name:     "pre-existing",
		Type:     types.ResourceTypeComputeInstance,
		Provider: "aws",
		Region:   "us-east-1",
		Status:   types.ResourceStatusHealthy,
	}
	require.NoError(t, database.Create(&existing).Error)

	require.NoError(t, Run(database))

	var resourceCount int64
	require.NoError(t, database.Model(&models.Resource{}).Count(&resourceCount).Error)
	assert.EqualValues(t, 1, resourceCount)
}
