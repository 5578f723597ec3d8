package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studio-api/internal/models"
	"github.com/noah-isme/studio-api/internal/service"
	"github.com/noah-isme/studio-api/pkg/response"
)

type scheduleService interface {
	List(ctx context.Context) ([]models.ScheduleDetail, error)
	Create(ctx context.Context, req service.CreateScheduleRequest) (*models.Schedule, error)
}

// ScheduleHandler exposes class booking endpoints.
type ScheduleHandler struct {
	schedules scheduleService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(schedules scheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// List godoc
// @Summary List schedules
// @Description Ordered by scheduled_at ascending, each joined with the student's name.
// @Tags Schedules
// @Produce json
// @Success 200 {array} models.ScheduleDetail
// @Failure 500 {object} response.ErrorBody
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.schedules.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules)
}

// Create godoc
// @Summary Book a class
// @Description duration_minutes defaults to 60.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} models.Schedule
// @Failure 500 {object} response.ErrorBody
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	schedule, err := h.schedules.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}
