package models

import (
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/types"
)

// Incident is a tracked infrastructure problem, optionally tied to one
// resource. ResolvedAt is set exactly when the incident reaches resolved or
// closed; AcknowledgedAt is set on first acknowledgment.
type Incident struct {
	BaseModel

	Title       string               `gorm:"not null" json:"title"`
	Description string               `json:"description"`
	Severity    types.Severity       `gorm:"not null;index" json:"severity"`
	Status      types.IncidentStatus `gorm:"not null;index;default:open" json:"status"`

	ResourceID *uint  `gorm:"index" json:"resource_id"`
	AssignedTo string `json:"assigned_to"`
	RootCause  string `json:"root_cause"`
	Resolution string `json:"resolution"`

	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`

	// Relationships
	Resource *Resource `gorm:"foreignKey:ResourceID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
