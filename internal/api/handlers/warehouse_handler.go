// control-tower/internal/api/handlers/warehouse_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexgenlogistics/control-tower/internal/export"
	"github.com/nexgenlogistics/control-tower/internal/service"
)

type WarehouseHandler struct {
	svc *service.AnalyticsService
}

func NewWarehouseHandler(svc *service.AnalyticsService) *WarehouseHandler {
	return &WarehouseHandler{svc: svc}
}

func (h *WarehouseHandler) plan(c *gin.Context) (*service.WarehousePlan, bool) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return nil, false
	}

	plan, err := h.svc.WarehousePlan(c.Request.Context(), criteria)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return plan, true
}

// GetPlan returns inventory classification, transfers and reorders together.
func (h *WarehouseHandler) GetPlan(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetInventory returns the classified inventory cells.
func (h *WarehouseHandler) GetInventory(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan.Inventory)
}

// GetTransfers returns the proposed transfer plan.
func (h *WarehouseHandler) GetTransfers(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan.Transfers)
}

// GetReorders returns the reorder recommendations.
func (h *WarehouseHandler) GetReorders(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan.Reorders)
}

// ExportTransfers streams the transfer plan as a CSV download.
func (h *WarehouseHandler) ExportTransfers(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transfer_plan.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteTransfers(c.Writer, plan.Transfers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}

// ExportReorders streams the reorder recommendations as a CSV download.
func (h *WarehouseHandler) ExportReorders(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reorder_plan.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteReorders(c.Writer, plan.Reorders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}

// ExportInventory streams the classified inventory as a CSV download.
func (h *WarehouseHandler) ExportInventory(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="inventory_health.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteInventory(c.Writer, plan.Inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}
