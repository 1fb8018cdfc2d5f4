package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/service"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
	"github.com/workhive/jobportal-api/pkg/response"
)

// SettingsHandler exposes the portal settings endpoints.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetGroup godoc
// @Summary Get a settings group
// @Tags Settings
// @Produce json
// @Param group path string true "Settings group"
// @Success 200 {object} response.Envelope
// @Router /admin/settings/{group} [get]
func (h *SettingsHandler) GetGroup(c *gin.Context) {
	group := c.Param("group")
	if !service.KnownSettingsGroup(group) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown settings group"))
		return
	}
	resolved, err := h.settings.GetGroup(c.Request.Context(), group)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resolved, nil)
}

// Update godoc
// @Summary Update a settings group
// @Tags Settings
// @Accept json
// @Produce json
// @Param group path string true "Settings group"
// @Param payload body dto.UpdateSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /admin/settings/{group} [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	group := c.Param("group")
	if !service.KnownSettingsGroup(group) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown settings group"))
		return
	}
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resolved, err := h.settings.Update(c.Request.Context(), group, req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resolved, nil)
}
