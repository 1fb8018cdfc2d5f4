package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/workhive/jobportal-api/internal/service"
	"github.com/workhive/jobportal-api/pkg/response"
)

// DashboardHandler exposes the admin dashboard endpoint.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview godoc
// @Summary Admin dashboard overview
// @Tags Dashboard
// @Produce json
// @Param window_days query int false "Rolling window in days"
// @Success 200 {object} response.Envelope
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	windowDays := 0
	if raw := c.Query("window_days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			windowDays = parsed
		}
	}
	overview, err := h.dashboard.Overview(c.Request.Context(), windowDays)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}
