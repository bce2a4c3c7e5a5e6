package handlers

import (
	"context"
	"net/http"

	"github.com/cloudpulse-dev/cloudpulse/internal/scheduler"
	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"github.com/cloudpulse-dev/cloudpulse/internal/utils"
	"github.com/gin-gonic/gin"
)

type HealthCheckHandler struct {
	checks    *services.HealthCheckService
	resources *services.ResourceService
}

func NewHealthCheckHandler(checks *services.HealthCheckService, resources *services.ResourceService) *HealthCheckHandler {
	return &HealthCheckHandler{checks: checks, resources: resources}
}

// History returns the latest checks for a resource, newest first.
func (h *HealthCheckHandler) History(ctx *gin.Context) {
	resourceID, err := utils.ParamID(ctx, "resource_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := utils.QueryInt(ctx, "limit", 50)

	checks, err := h.checks.ChecksForResource(resourceID, limit)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, checks)
}

// Recent returns all checks from the last N hours across resources.
func (h *HealthCheckHandler) Recent(ctx *gin.Context) {
	hours := utils.QueryInt(ctx, "hours", 24)

	checks, err := h.checks.RecentChecks(hours)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, checks)
}

// Run triggers an on-demand probe of one resource. Unlike the scheduled
// sweep, a probe failure here propagates to the caller.
func (h *HealthCheckHandler) Run(ctx *gin.Context) {
	resourceID, err := utils.ParamID(ctx, "resource_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource, err := h.resources.GetByID(resourceID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	check, err := h.checks.PerformHealthCheck(ctx.Request.Context(), resource)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, check)
}

// RunAll kicks off a sweep of the whole fleet outside the timer. The sweep
// runs in the background; an overlapping request is absorbed by the
// scheduler's skip policy.
func (h *HealthCheckHandler) RunAll(ctx *gin.Context) {
	go scheduler.TriggerSweep(context.Background())

	ctx.JSON(http.StatusAccepted, gin.H{"message": "Health check sweep started"})
}

// AvgResponseTime reports a resource's mean latency over the last N hours.
func (h *HealthCheckHandler) AvgResponseTime(ctx *gin.Context) {
	resourceID, err := utils.ParamID(ctx, "resource_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours := utils.QueryInt(ctx, "hours", 24)

	avg, err := h.checks.AvgResponseTime(resourceID, hours)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"resource_id":          resourceID,
		"avg_response_time_ms": avg,
		"period_hours":         hours,
	})
}
