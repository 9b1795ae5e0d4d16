// control-tower/internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nexgenlogistics/control-tower/internal/api/handlers"
	"github.com/nexgenlogistics/control-tower/internal/api/middleware"
	"github.com/nexgenlogistics/control-tower/internal/service"
)

func NewRouter(svc *service.AnalyticsService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if svc != nil {
		dashboardHandler := handlers.NewDashboardHandler(svc)
		dashboardGroup := apiGroup.Group("/dashboard")
		{
			dashboardGroup.GET("/info", dashboardHandler.GetInfo)
			dashboardGroup.GET("/filters", dashboardHandler.GetFilterOptions)
			dashboardGroup.GET("/kpis", dashboardHandler.GetKPIs)
			dashboardGroup.GET("/groups/:column", dashboardHandler.GetPerformance)
			dashboardGroup.GET("/costs/:column", dashboardHandler.GetCosts)
			dashboardGroup.GET("/emissions", dashboardHandler.GetEmissions)
			dashboardGroup.GET("/lanes/top", dashboardHandler.GetHighCostLanes)
		}
		apiGroup.POST("/admin/reload", dashboardHandler.Reload)

		routesHandler := handlers.NewRoutesHandler(svc)
		routesGroup := apiGroup.Group("/routes")
		{
			routesGroup.GET("/scores", routesHandler.GetScores)
			routesGroup.GET("/scores/export", routesHandler.ExportScores)
			routesGroup.GET("/extremes", routesHandler.GetExtremes)
			routesGroup.GET("/lanes", routesHandler.GetLanes)
		}

		warehouseHandler := handlers.NewWarehouseHandler(svc)
		warehouseGroup := apiGroup.Group("/warehouse")
		{
			warehouseGroup.GET("/plan", warehouseHandler.GetPlan)
			warehouseGroup.GET("/inventory", warehouseHandler.GetInventory)
			warehouseGroup.GET("/inventory/export", warehouseHandler.ExportInventory)
			warehouseGroup.GET("/transfers", warehouseHandler.GetTransfers)
			warehouseGroup.GET("/transfers/export", warehouseHandler.ExportTransfers)
			warehouseGroup.GET("/reorders", warehouseHandler.GetReorders)
			warehouseGroup.GET("/reorders/export", warehouseHandler.ExportReorders)
		}

		feedbackHandler := handlers.NewFeedbackHandler(svc)
		feedbackGroup := apiGroup.Group("/feedback")
		{
			feedbackGroup.GET("/insights", feedbackHandler.GetInsights)
			feedbackGroup.GET("/trend", feedbackHandler.GetTrend)
			feedbackGroup.GET("/issues", feedbackHandler.GetIssues)
			feedbackGroup.GET("/themes", feedbackHandler.GetThemes)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
