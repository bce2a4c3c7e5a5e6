// Package seed loads a realistic demo fleet into an empty database so the
// dashboard has something to show on first boot.
package seed

import (
	"log"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/gorm"
)

// Run inserts demo resources and incidents when the tables are empty. It is
// a no-op on a populated database.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Resource{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	resources := []models.Resource{
		{Name: "prod-web-server-01", Type: types.ResourceTypeComputeInstance, Provider: "aws", Region: "us-east-1", CloudID: "i-0a1b2c3d4e5f60001", IPAddress: "10.0.1.15", Environment: "prod", Status: types.ResourceStatusHealthy},
		{Name: "prod-web-server-02", Type: types.ResourceTypeComputeInstance, Provider: "aws", Region: "us-east-1", CloudID: "i-0a1b2c3d4e5f60002", IPAddress: "10.0.1.16", Environment: "prod", Status: types.ResourceStatusHealthy},
		{Name: "prod-api-gateway", Type: types.ResourceTypeLoadBalancer, Provider: "aws", Region: "us-east-1", CloudID: "arn:aws:elasticloadbalancing:us-east-1:lb/prod-api", Environment: "prod", Status: types.ResourceStatusHealthy},
		{Name: "prod-orders-db", Type: types.ResourceTypeManagedDatabase, Provider: "aws", Region: "us-east-1", CloudID: "arn:aws:rds:us-east-1:db:prod-orders", Environment: "prod", Status: types.ResourceStatusDegraded},
		{Name: "prod-sessions-cache", Type: types.ResourceTypeMemoryCache, Provider: "aws", Region: "us-east-1", Environment: "prod", Status: types.ResourceStatusHealthy},
		{Name: "prod-assets-bucket", Type: types.ResourceTypeObjectStore, Provider: "aws", Region: "us-east-1", Environment: "prod", Status: types.ResourceStatusHealthy},
		{Name: "prod-checkout-fn", Type: types.ResourceTypeFunction, Provider: "aws", Region: "us-west-2", Environment: "prod", Status: types.ResourceStatusHealthy},
		{Name: "prod-events-table", Type: types.ResourceTypeKVTable, Provider: "aws", Region: "us-west-2", Environment: "prod", Status: types.ResourceStatusHealthy},
		{Name: "prod-edge-cdn", Type: types.ResourceTypeCDNDistribution, Provider: "aws", Region: "global", Environment: "prod", Status: types.ResourceStatusHealthy},
		{Name: "prod-k8s-cluster", Type: types.ResourceTypeKubernetesCluster, Provider: "gcp", Region: "europe-west1", Environment: "prod", Status: types.ResourceStatusUnhealthy},
		{Name: "staging-web-server", Type: types.ResourceTypeComputeInstance, Provider: "gcp", Region: "europe-west1", Environment: "staging", Status: types.ResourceStatusHealthy},
		{Name: "staging-worker-svc", Type: types.ResourceTypeContainerService, Provider: "azure", Region: "westeurope", Environment: "staging", Status: types.ResourceStatusUnknown},
	}

	if err := db.Create(&resources).Error; err != nil {
		return err
	}

	k8sID := resources[9].ID
	dbID := resources[3].ID
	now := time.Now()

	incidents := []models.Incident{
		{
			Title:       "Production cluster node pool unreachable",
			Description: "Two nodes in the prod-k8s-cluster node pool stopped responding to health probes.",
			Severity:    types.SeverityCritical,
			Status:      types.IncidentStatusOpen,
			ResourceID:  &k8sID,
		},
		{
			Title:       "Orders database latency above threshold",
			Description: "p99 query latency on prod-orders-db has exceeded 2s for the last 30 minutes.",
			Severity:    types.SeverityHigh,
			Status:      types.IncidentStatusOpen,
			ResourceID:  &dbID,
			AssignedTo:  "dba-oncall",
		},
		{
			Title:          "Quarterly failover drill",
			Description:    "Planned region failover exercise, tracking as an informational incident.",
			Severity:       types.SeverityInfo,
			Status:         types.IncidentStatusAcknowledged,
			AcknowledgedAt: &now,
		},
	}

	if err := db.Create(&incidents).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d demo resources and %d incidents", len(resources), len(incidents))
	return nil
}
