package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codecops/cleanify-api/internal/services"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats returns the aggregated dashboard metrics.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Dashboard()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
