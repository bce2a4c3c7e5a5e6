package handlers

import (
	"net/http"

	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns the executive overview of infrastructure health.
func (h *DashboardHandler) Summary(ctx *gin.Context) {
	summary, err := h.dashboard.Summary()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
