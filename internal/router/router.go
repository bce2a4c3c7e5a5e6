package router

import (
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/handlers"
	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps bundles the services the HTTP layer exposes.
type Deps struct {
	Resources *services.ResourceService
	Checks    *services.HealthCheckService
	Incidents *services.IncidentService
	Dashboard *services.DashboardService
}

// NewDeps wires the full service stack over one database handle.
func NewDeps(db *gorm.DB, checks *services.HealthCheckService) Deps {
	return Deps{
		Resources: services.NewResourceService(db),
		Checks:    checks,
		Incidents: services.NewIncidentService(db),
		Dashboard: services.NewDashboardService(db),
	}
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	resourceHandler := handlers.NewResourceHandler(deps.Resources)
	checkHandler := handlers.NewHealthCheckHandler(deps.Checks, deps.Resources)
	incidentHandler := handlers.NewIncidentHandler(deps.Incidents)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", handlers.CheckFeed)
		api.GET("/dashboard", dashboardHandler.Summary)

		resources := api.Group("/resources")
		{
			resources.GET("", resourceHandler.List)
			resources.GET("/unhealthy", resourceHandler.Unhealthy)
			resources.GET("/cloud/:cloud_id", resourceHandler.GetByCloudID)
			resources.GET("/:id", resourceHandler.Get)
			resources.POST("", resourceHandler.Create)
			resources.PUT("/:id", resourceHandler.Update)
			resources.PATCH("/:id/status", resourceHandler.UpdateStatus)
			resources.DELETE("/:id", resourceHandler.Delete)
		}

		incidents := api.Group("/incidents")
		{
			incidents.GET("", incidentHandler.List)
			incidents.GET("/active", incidentHandler.Active)
			incidents.GET("/critical", incidentHandler.Critical)
			incidents.GET("/resource/:resource_id", incidentHandler.ByResource)
			incidents.GET("/:id", incidentHandler.Get)
			incidents.POST("", incidentHandler.Create)
			incidents.PUT("/:id", incidentHandler.Update)
			incidents.POST("/:id/ack", incidentHandler.Acknowledge)
			incidents.POST("/:id/resolve", incidentHandler.Resolve)
			incidents.DELETE("/:id", incidentHandler.Delete)
		}

		healthchecks := api.Group("/healthchecks")
		{
			healthchecks.GET("/recent", checkHandler.Recent)
			healthchecks.POST("/run", checkHandler.RunAll)
			healthchecks.GET("/resource/:resource_id", checkHandler.History)
			healthchecks.POST("/resource/:resource_id/run", checkHandler.Run)
			healthchecks.GET("/resource/:resource_id/avg-time", checkHandler.AvgResponseTime)
		}
	}

	return r
}
