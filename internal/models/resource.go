package models

import (
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/datatypes"
)

// Resource is a monitored cloud infrastructure unit (instance, database,
// load balancer, function, ...). Status is mutated only by the probe
// pipeline or an explicit operator override.
type Resource struct {
	BaseModel

	Name     string             `gorm:"not null" json:"name"`
	Type     types.ResourceType `gorm:"not null;index" json:"type"`
	Provider string             `gorm:"not null" json:"provider"` // "aws", "gcp", "azure"
	Region   string             `gorm:"not null;index" json:"region"`

	CloudID     string               `gorm:"uniqueIndex:idx_resource_cloud_id,where:cloud_id <> ''" json:"cloud_id"` // provider-native ID, e.g. i-0abc123
	IPAddress   string               `json:"ip_address"`
	Environment string               `json:"environment"` // "prod", "staging", "dev"
	Tags        datatypes.JSON       `json:"tags"`
	Metadata    datatypes.JSON       `json:"metadata"`
	Status      types.ResourceStatus `gorm:"not null;index;default:unknown" json:"status"`

	LastCheckedAt *time.Time `json:"last_checked_at"`

	// Relationships
	HealthChecks []HealthCheck `gorm:"foreignKey:ResourceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Incidents    []Incident    `gorm:"foreignKey:ResourceID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
