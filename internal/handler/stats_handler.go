package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/pkg/response"
)

type statsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardStats, bool, error)
}

// StatsHandler serves dashboard aggregates.
type StatsHandler struct {
	stats statsService
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(stats statsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Dashboard godoc
// @Summary Dashboard aggregates
// @Description Student counts, upcoming classes and finance sums. X-Cache reports HIT or MISS.
// @Tags Stats
// @Produce json
// @Success 200 {object} dto.DashboardStats
// @Failure 500 {object} response.ErrorBody
// @Router /stats [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, hit, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	response.JSON(c, http.StatusOK, stats)
}
