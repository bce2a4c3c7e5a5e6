package services

import (
	"log"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/apperrors"
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/stores"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/gorm"
)

// IncidentRequest carries the caller-supplied fields for creating or
// updating an incident. Status is ignored on create: every incident starts
// open.
type IncidentRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	Severity    types.Severity       `json:"severity" binding:"required"`
	ResourceID  *uint                `json:"resource_id"`
	AssignedTo  string               `json:"assigned_to"`
	Status      types.IncidentStatus `json:"status"`
	RootCause   string               `json:"root_cause"`
	Resolution  string               `json:"resolution"`
}

type IncidentService struct {
	incidents *stores.IncidentStore
	resources *stores.ResourceStore
}

func NewIncidentService(db *gorm.DB) *IncidentService {
	return &IncidentService{
		incidents: stores.NewIncidentStore(db),
		resources: stores.NewResourceStore(db),
	}
}

func (s *IncidentService) All() ([]models.Incident, error) {
	return s.incidents.All()
}

// Active returns unresolved incidents in triage order: severity ascending
// (critical first), then creation time ascending.
func (s *IncidentService) Active() ([]models.Incident, error) {
	return s.incidents.Active()
}

func (s *IncidentService) ActiveCritical() ([]models.Incident, error) {
	return s.incidents.ActiveCritical()
}

func (s *IncidentService) GetByID(id uint) (*models.Incident, error) {
	return s.incidents.ByID(id)
}

func (s *IncidentService) ByResource(resourceID uint) ([]models.Incident, error) {
	return s.incidents.ByResource(resourceID)
}

// Create opens a new incident. The lifecycle status is forced to open
// regardless of what the request carries; a resource reference must point at
// an existing resource.
func (s *IncidentService) Create(req *IncidentRequest) (*models.Incident, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if req.ResourceID != nil {
		if _, err := s.resources.ByID(*req.ResourceID); err != nil {
			return nil, err
		}
	}

	incident := models.Incident{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      types.IncidentStatusOpen,
		ResourceID:  req.ResourceID,
		AssignedTo:  req.AssignedTo,
	}

	if err := s.incidents.Create(&incident); err != nil {
		return nil, err
	}

	log.Printf("Incident created: [%d] %s (severity: %s)", incident.ID, incident.Title, incident.Severity)
	return &incident, nil
}

// Acknowledge moves the incident to acknowledged and stamps AcknowledgedAt.
// Re-acknowledging is allowed: the status is reset and the timestamp
// refreshed.
func (s *IncidentService) Acknowledge(id uint) (*models.Incident, error) {
	incident, err := s.incidents.ByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	incident.Status = types.IncidentStatusAcknowledged
	incident.AcknowledgedAt = &now

	if err := s.incidents.Save(incident); err != nil {
		return nil, err
	}

	log.Printf("Incident %d acknowledged", id)
	return incident, nil
}

// Resolve closes out the incident from any state; acknowledgment is not a
// prerequisite. Root cause and resolution may be empty.
func (s *IncidentService) Resolve(id uint, rootCause, resolution string) (*models.Incident, error) {
	incident, err := s.incidents.ByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	incident.Status = types.IncidentStatusResolved
	incident.RootCause = rootCause
	incident.Resolution = resolution
	incident.ResolvedAt = &now

	if err := s.incidents.Save(incident); err != nil {
		return nil, err
	}

	log.Printf("Incident %d resolved: %s", id, resolution)
	return incident, nil
}

// Update is the administrative override path: it replaces the authored
// fields and, when the request carries a status, sets it directly without
// running the lifecycle transitions. Overriding into resolved or closed
// stamps ResolvedAt if none was recorded, keeping the timestamp invariant.
func (s *IncidentService) Update(id uint, req *IncidentRequest) (*models.Incident, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	incident, err := s.incidents.ByID(id)
	if err != nil {
		return nil, err
	}

	if req.ResourceID != nil {
		if _, err := s.resources.ByID(*req.ResourceID); err != nil {
			return nil, err
		}
		incident.ResourceID = req.ResourceID
	}

	incident.Title = req.Title
	incident.Description = req.Description
	incident.Severity = req.Severity
	incident.AssignedTo = req.AssignedTo

	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, apperrors.NewValidation("status", "unknown incident status")
		}
		incident.Status = req.Status
		if !req.Status.IsActive() && incident.ResolvedAt == nil {
			now := time.Now()
			incident.ResolvedAt = &now
		}
	}
	if req.RootCause != "" {
		incident.RootCause = req.RootCause
	}
	if req.Resolution != "" {
		incident.Resolution = req.Resolution
	}

	if err := s.incidents.Save(incident); err != nil {
		return nil, err
	}

	return incident, nil
}

// Delete removes the incident permanently, regardless of its status.
func (s *IncidentService) Delete(id uint) error {
	incident, err := s.incidents.ByID(id)
	if err != nil {
		return err
	}

	if err := s.incidents.Delete(incident); err != nil {
		return err
	}

	log.Printf("Incident %d deleted", id)
	return nil
}

func (s *IncidentService) validate(req *IncidentRequest) error {
	if req.Title == "" {
		return apperrors.NewValidation("title", "incident title is required")
	}
	if !req.Severity.IsValid() {
		return apperrors.NewValidation("severity", "unknown severity")
	}
	return nil
}
