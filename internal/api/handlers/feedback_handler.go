// control-tower/internal/api/handlers/feedback_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexgenlogistics/control-tower/internal/service"
)

type FeedbackHandler struct {
	svc *service.AnalyticsService
}

func NewFeedbackHandler(svc *service.AnalyticsService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// GetInsights returns the weekly rating trend, per-issue ratings and top
// feedback themes in one payload.
func (h *FeedbackHandler) GetInsights(c *gin.Context) {
	insights, ok := h.insights(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insights)
}

// GetTrend returns the weekly average rating trend.
func (h *FeedbackHandler) GetTrend(c *gin.Context) {
	insights, ok := h.insights(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insights.WeeklyTrend)
}

// GetIssues returns the average rating and count per issue category.
func (h *FeedbackHandler) GetIssues(c *gin.Context) {
	insights, ok := h.insights(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insights.ByIssue)
}

// GetThemes returns the most frequent feedback words.
func (h *FeedbackHandler) GetThemes(c *gin.Context) {
	insights, ok := h.insights(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insights.TopThemes)
}

func (h *FeedbackHandler) insights(c *gin.Context) (*service.FeedbackInsights, bool) {
	limit := parsePositiveIntWithDefault(c.Query("limit"), 20)
	insights, err := h.svc.FeedbackInsights(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return insights, true
}
