package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"github.com/cloudpulse-dev/cloudpulse/internal/utils"
	"github.com/gin-gonic/gin"
)

type IncidentHandler struct {
	incidents *services.IncidentService
}

func NewIncidentHandler(incidents *services.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidents: incidents}
}

type ResolveIncidentRequest struct {
	RootCause  string `json:"root_cause"`
	Resolution string `json:"resolution"`
}

func (h *IncidentHandler) List(ctx *gin.Context) {
	incidents, err := h.incidents.All()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) Active(ctx *gin.Context) {
	incidents, err := h.incidents.Active()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) Critical(ctx *gin.Context) {
	incidents, err := h.incidents.ActiveCritical()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) Get(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidents.GetByID(id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) ByResource(ctx *gin.Context) {
	resourceID, err := utils.ParamID(ctx, "resource_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents, err := h.incidents.ByResource(resourceID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) Create(ctx *gin.Context) {
	var req services.IncidentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidents.Create(&req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, incident)
}

func (h *IncidentHandler) Update(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req services.IncidentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidents.Update(id, &req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) Acknowledge(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidents.Acknowledge(id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) Resolve(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Root cause and resolution are optional; an empty body is accepted.
	var req ResolveIncidentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidents.Resolve(id, req.RootCause, req.Resolution)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) Delete(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.incidents.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
