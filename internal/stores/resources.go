// Package stores holds the GORM query layer for resources, health checks
// and incidents.
package stores

import (
	"errors"

	"github.com/cloudpulse-dev/cloudpulse/internal/apperrors"
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"gorm.io/gorm"
)

type ResourceStore struct {
	db *gorm.DB
}

func NewResourceStore(db *gorm.DB) *ResourceStore {
	return &ResourceStore{db: db}
}

func (s *ResourceStore) Create(resource *models.Resource) error {
	return s.db.Create(resource).Error
}

func (s *ResourceStore) ByID(id uint) (*models.Resource, error) {
	var resource models.Resource

	if err := s.db.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Resource", id)
		}
		return nil, err
	}

	return &resource, nil
}

func (s *ResourceStore) ByCloudID(cloudID string) (*models.Resource, error) {
	var resource models.Resource

	if err := s.db.Where("cloud_id = ?", cloudID).First(&resource).Error; err != nil {
		return nil, err
	}

	return &resource, nil
}

func (s *ResourceStore) All() ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.Find(&resources).Error
	return resources, err
}

func (s *ResourceStore) ByType(resourceType types.ResourceType) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.Where("type = ?", resourceType).Find(&resources).Error
	return resources, err
}

func (s *ResourceStore) ByStatus(status types.ResourceStatus) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.Where("status = ?", status).Find(&resources).Error
	return resources, err
}

func (s *ResourceStore) ByStatusIn(statuses []types.ResourceStatus) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.Where("status IN ?", statuses).Find(&resources).Error
	return resources, err
}

func (s *ResourceStore) ByRegion(region string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.Where("region = ?", region).Find(&resources).Error
	return resources, err
}

func (s *ResourceStore) ByProvider(provider string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.Where("provider = ?", provider).Find(&resources).Error
	return resources, err
}

func (s *ResourceStore) ByEnvironment(environment string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.Where("environment = ?", environment).Find(&resources).Error
	return resources, err
}

func (s *ResourceStore) Save(resource *models.Resource) error {
	return s.db.Save(resource).Error
}

// Delete removes the resource, its health-check history, and detaches any
// incidents that reference it. Incident records survive as an audit trail.
func (s *ResourceStore) Delete(resource *models.Resource) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Incident{}).
			Where("resource_id = ?", resource.ID).
			Update("resource_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("resource_id = ?", resource.ID).
			Delete(&models.HealthCheck{}).Error; err != nil {
			return err
		}

		return tx.Delete(resource).Error
	})
}

func (s *ResourceStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Resource{}).Count(&count).Error
	return count, err
}

func (s *ResourceStore) CountByStatus(status types.ResourceStatus) (int64, error) {
	var count int64
	err := s.db.Model(&models.Resource{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountUnhealthy counts resources whose status is unhealthy or degraded.
func (s *ResourceStore) CountUnhealthy() (int64, error) {
	var count int64
	err := s.db.Model(&models.Resource{}).
		Where("status IN ?", []types.ResourceStatus{types.ResourceStatusUnhealthy, types.ResourceStatusDegraded}).
		Count(&count).Error
	return count, err
}

func (s *ResourceStore) CountGroupedByStatus() (map[string]int64, error) {
	return s.countGroupedBy("status")
}

func (s *ResourceStore) CountGroupedByType() (map[string]int64, error) {
	return s.countGroupedBy("type")
}

func (s *ResourceStore) CountGroupedByRegion() (map[string]int64, error) {
	return s.countGroupedBy("region")
}

func (s *ResourceStore) countGroupedBy(column string) (map[string]int64, error) {
	var rows []struct {
		Label string
		Total int64
	}

	err := s.db.Model(&models.Resource{}).
		Select(column + " as label, count(*) as total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Total
	}

	return counts, nil
}
