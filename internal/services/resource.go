package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/apperrors"
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/stores"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResourceRequest carries the caller-supplied fields for registering or
// updating a monitored resource.
type ResourceRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Type        types.ResourceType     `json:"type" binding:"required"`
	Provider    string                 `json:"provider" binding:"required"`
	Region      string                 `json:"region" binding:"required"`
	CloudID     string                 `json:"cloud_id"`
	IPAddress   string                 `json:"ip_address"`
	Environment string                 `json:"environment"`
	Tags        map[string]string      `json:"tags"`
	Metadata    map[string]interface{} `json:"metadata"`
	Status      types.ResourceStatus   `json:"status"`
}

type ResourceService struct {
	resources *stores.ResourceStore
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{resources: stores.NewResourceStore(db)}
}

func (s *ResourceService) validate(req *ResourceRequest) error {
	if req.Name == "" {
		return apperrors.NewValidation("name", "resource name is required")
	}
	if !req.Type.IsValid() {
		return apperrors.NewValidation("type", "unknown resource type")
	}
	if req.Provider == "" {
		return apperrors.NewValidation("provider", "provider is required")
	}
	if req.Region == "" {
		return apperrors.NewValidation("region", "region is required")
	}
	if req.Status != "" && !req.Status.IsValid() {
		return apperrors.NewValidation("status", "unknown resource status")
	}
	return nil
}

func (s *ResourceService) Create(req *ResourceRequest) (*models.Resource, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	status := types.ResourceStatusUnknown
	if req.Status != "" {
		status = req.Status
	}

	resource := models.Resource{
		Name:        req.Name,
		Type:        req.Type,
		Provider:    req.Provider,
		Region:      req.Region,
		CloudID:     req.CloudID,
		IPAddress:   req.IPAddress,
		Environment: req.Environment,
		Tags:        marshalBlob(req.Tags),
		Metadata:    marshalBlob(req.Metadata),
		Status:      status,
	}

	if err := s.resources.Create(&resource); err != nil {
		return nil, err
	}

	log.Printf("Created resource: %s (%s)", resource.Name, resource.Type)
	return &resource, nil
}

func (s *ResourceService) GetByID(id uint) (*models.Resource, error) {
	return s.resources.ByID(id)
}

func (s *ResourceService) GetByCloudID(cloudID string) (*models.Resource, error) {
	return s.resources.ByCloudID(cloudID)
}

func (s *ResourceService) All() ([]models.Resource, error) {
	return s.resources.All()
}

func (s *ResourceService) ByType(resourceType types.ResourceType) ([]models.Resource, error) {
	return s.resources.ByType(resourceType)
}

func (s *ResourceService) ByStatus(status types.ResourceStatus) ([]models.Resource, error) {
	return s.resources.ByStatus(status)
}

func (s *ResourceService) ByRegion(region string) ([]models.Resource, error) {
	return s.resources.ByRegion(region)
}

func (s *ResourceService) ByProvider(provider string) ([]models.Resource, error) {
	return s.resources.ByProvider(provider)
}

func (s *ResourceService) ByEnvironment(environment string) ([]models.Resource, error) {
	return s.resources.ByEnvironment(environment)
}

// Unhealthy lists resources currently unhealthy or degraded.
func (s *ResourceService) Unhealthy() ([]models.Resource, error) {
	return s.resources.ByStatusIn([]types.ResourceStatus{
		types.ResourceStatusUnhealthy,
		types.ResourceStatusDegraded,
	})
}

func (s *ResourceService) Update(id uint, req *ResourceRequest) (*models.Resource, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	resource, err := s.resources.ByID(id)
	if err != nil {
		return nil, err
	}

	resource.Name = req.Name
	resource.Type = req.Type
	resource.Provider = req.Provider
	resource.Region = req.Region
	resource.CloudID = req.CloudID
	resource.IPAddress = req.IPAddress
	resource.Environment = req.Environment
	resource.Tags = marshalBlob(req.Tags)
	resource.Metadata = marshalBlob(req.Metadata)
	if req.Status != "" {
		resource.Status = req.Status
	}

	if err := s.resources.Save(resource); err != nil {
		return nil, err
	}

	log.Printf("Updated resource: %s (ID: %d)", resource.Name, resource.ID)
	return resource, nil
}

// UpdateStatus is the operator override path for a resource's status.
func (s *ResourceService) UpdateStatus(id uint, status types.ResourceStatus) (*models.Resource, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidation("status", "unknown resource status")
	}

	resource, err := s.resources.ByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resource.Status = status
	resource.LastCheckedAt = &now

	if err := s.resources.Save(resource); err != nil {
		return nil, err
	}

	return resource, nil
}

func (s *ResourceService) Delete(id uint) error {
	resource, err := s.resources.ByID(id)
	if err != nil {
		return err
	}

	if err := s.resources.Delete(resource); err != nil {
		return err
	}

	log.Printf("Deleted resource: %s (ID: %d)", resource.Name, id)
	return nil
}

func marshalBlob(blob interface{}) datatypes.JSON {
	switch v := blob.(type) {
	case nil:
		return nil
	case map[string]string:
		if len(v) == 0 {
			return nil
		}
	case map[string]interface{}:
		if len(v) == 0 {
			return nil
		}
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return nil
	}

	return data
}
