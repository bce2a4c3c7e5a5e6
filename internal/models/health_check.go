package models

import (
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/datatypes"
)

// HealthCheck records one probe outcome for a resource. Rows are append-only;
// a resource's checks form its health timeline.
type HealthCheck struct {
	BaseModel

	ResourceID     uint               `gorm:"not null;index" json:"resource_id"`
	Status         types.HealthStatus `gorm:"not null;index" json:"status"`
	ResponseTimeMs int                `json:"response_time_ms"`
	StatusCode     int                `json:"status_code"`
	Message        string             `json:"message"`
	Details        datatypes.JSON     `json:"details,omitempty"`
	CheckedAt      time.Time          `gorm:"not null;index" json:"checked_at"`

	// Relationships
	Resource Resource `gorm:"foreignKey:ResourceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
