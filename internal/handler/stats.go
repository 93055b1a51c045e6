package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/service"
)

type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Summary GET /api/stats/summary
func (h *StatsHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.stats.Summary()})
}
