package handlers

import (
	"errors"
	"net/http"

	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"github.com/cloudpulse-dev/cloudpulse/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResourceHandler struct {
	resources *services.ResourceService
}

func NewResourceHandler(resources *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

type UpdateStatusRequest struct {
	Status types.ResourceStatus `json:"status" binding:"required"`
}

// List returns all resources, optionally filtered by exactly one of type,
// status, region, provider or environment.
func (h *ResourceHandler) List(ctx *gin.Context) {
	var (
		resources interface{}
		err       error
	)

	switch {
	case ctx.Query("type") != "":
		resources, err = h.resources.ByType(types.ResourceType(ctx.Query("type")))
	case ctx.Query("status") != "":
		resources, err = h.resources.ByStatus(types.ResourceStatus(ctx.Query("status")))
	case ctx.Query("region") != "":
		resources, err = h.resources.ByRegion(ctx.Query("region"))
	case ctx.Query("provider") != "":
		resources, err = h.resources.ByProvider(ctx.Query("provider"))
	case ctx.Query("environment") != "":
		resources, err = h.resources.ByEnvironment(ctx.Query("environment"))
	default:
		resources, err = h.resources.All()
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) Get(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource, err := h.resources.GetByID(id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resource)
}

// GetByCloudID looks a resource up by its provider-native identifier.
func (h *ResourceHandler) GetByCloudID(ctx *gin.Context) {
	resource, err := h.resources.GetByCloudID(ctx.Param("cloud_id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Resource not found with cloud id: " + ctx.Param("cloud_id")})
			return
		}
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) Unhealthy(ctx *gin.Context) {
	resources, err := h.resources.Unhealthy()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) Create(ctx *gin.Context) {
	var req services.ResourceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource, err := h.resources.Create(&req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) Update(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req services.ResourceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource, err := h.resources.Update(id, &req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resource)
}

// UpdateStatus is the operator override for a resource's status field.
func (h *ResourceHandler) UpdateStatus(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateStatusRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource, err := h.resources.UpdateStatus(id, req.Status)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) Delete(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resources.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
