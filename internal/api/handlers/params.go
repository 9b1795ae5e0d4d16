// control-tower/internal/api/handlers/params.go
package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

const dateLayout = "2006-01-02"

// parseFilterCriteria reads the shared filter query params. List params
// accept repeated keys and comma-separated values.
func parseFilterCriteria(c *gin.Context) (domain.FilterCriteria, error) {
	var criteria domain.FilterCriteria

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return criteria, err
		}
		criteria.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return criteria, err
		}
		criteria.To = &t
	}

	criteria.Priorities = queryList(c, "priority")
	criteria.Products = queryList(c, "product")
	criteria.Origins = queryList(c, "origin")
	criteria.Destinations = queryList(c, "destination")
	criteria.Segments = queryList(c, "segment")
	return criteria, nil
}

func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}
