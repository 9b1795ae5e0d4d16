// control-tower/internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexgenlogistics/control-tower/internal/analytics"
	"github.com/nexgenlogistics/control-tower/internal/service"
)

type DashboardHandler struct {
	svc *service.AnalyticsService
}

func NewDashboardHandler(svc *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetInfo returns the loaded dataset metadata.
func (h *DashboardHandler) GetInfo(c *gin.Context) {
	info, err := h.svc.DatasetInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetFilterOptions returns the distinct values of each filter dimension.
func (h *DashboardHandler) GetFilterOptions(c *gin.Context) {
	options, err := h.svc.FilterOptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, options)
}

// GetKPIs returns the headline KPIs of the filtered selection.
func (h *DashboardHandler) GetKPIs(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), criteria)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetPerformance groups on-time behaviour by the column path param.
func (h *DashboardHandler) GetPerformance(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}

	column, err := analytics.ParseGroupColumn(c.Param("column"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groups, err := h.svc.GroupPerformance(c.Request.Context(), criteria, column)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GetCosts sums cost components per value of the column path param.
func (h *DashboardHandler) GetCosts(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}

	column, err := analytics.ParseGroupColumn(c.Param("column"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	costs, err := h.svc.CostBreakdown(c.Request.Context(), criteria, column)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, costs)
}

// GetEmissions aggregates estimated CO2 per origin warehouse.
func (h *DashboardHandler) GetEmissions(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}

	emissions, err := h.svc.EmissionsByOrigin(c.Request.Context(), criteria)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, emissions)
}

// GetHighCostLanes ranks lanes by average delivery cost.
func (h *DashboardHandler) GetHighCostLanes(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}

	limit := parsePositiveIntWithDefault(c.Query("limit"), 10)
	lanes, err := h.svc.HighCostLanes(c.Request.Context(), criteria, limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lanes)
}

// Reload reloads the dataset and drops memoized results.
func (h *DashboardHandler) Reload(c *gin.Context) {
	if err := h.svc.Reload(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.InvalidateCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}
