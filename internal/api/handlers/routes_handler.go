// control-tower/internal/api/handlers/routes_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexgenlogistics/control-tower/internal/export"
	"github.com/nexgenlogistics/control-tower/internal/routeplanner"
	"github.com/nexgenlogistics/control-tower/internal/service"
)

type RoutesHandler struct {
	svc *service.AnalyticsService
}

func NewRoutesHandler(svc *service.AnalyticsService) *RoutesHandler {
	return &RoutesHandler{svc: svc}
}

// parseWeights reads the scoring weights from query params. When no weight
// param is present the configured defaults apply; a partial set means the
// missing components are zero.
func (h *RoutesHandler) parseWeights(c *gin.Context) (routeplanner.Weights, error) {
	cost, hasCost := c.GetQuery("cost_weight")
	delay, hasDelay := c.GetQuery("delay_weight")
	emission, hasEmission := c.GetQuery("emission_weight")
	if !hasCost && !hasDelay && !hasEmission {
		return h.svc.DefaultWeights(), nil
	}

	var w routeplanner.Weights
	var err error
	if w.Cost, err = parseWeight(cost); err != nil {
		return w, err
	}
	if w.Delay, err = parseWeight(delay); err != nil {
		return w, err
	}
	if w.Emission, err = parseWeight(emission); err != nil {
		return w, err
	}
	return w.Normalize()
}

func parseWeight(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// GetScores scores the filtered selection, best route first.
func (h *RoutesHandler) GetScores(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}
	weights, err := h.parseWeights(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weights: " + err.Error()})
		return
	}

	scored, err := h.svc.RouteScores(c.Request.Context(), criteria, weights)
	if err != nil {
		if errors.Is(err, routeplanner.ErrInvalidWeights) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"weights": weights,
		"routes":  scored,
	})
}

// GetExtremes returns the n best and n worst routes.
func (h *RoutesHandler) GetExtremes(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}
	weights, err := h.parseWeights(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weights: " + err.Error()})
		return
	}

	n := parsePositiveIntWithDefault(c.Query("n"), 0)
	extremes, err := h.svc.RouteExtremes(c.Request.Context(), criteria, weights, n)
	if err != nil {
		if errors.Is(err, routeplanner.ErrInvalidWeights) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, extremes)
}

// GetLanes aggregates the filtered selection per lane.
func (h *RoutesHandler) GetLanes(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}

	lanes, err := h.svc.LaneSummaries(c.Request.Context(), criteria)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lanes)
}

// ExportScores streams the scored routes as a CSV download.
func (h *RoutesHandler) ExportScores(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
		return
	}
	weights, err := h.parseWeights(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weights: " + err.Error()})
		return
	}

	scored, err := h.svc.RouteScores(c.Request.Context(), criteria, weights)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="route_scores.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteScoredRoutes(c.Writer, scored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	}
}
