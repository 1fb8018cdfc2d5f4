package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/service"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
	"github.com/workhive/jobportal-api/pkg/response"
)

// SubscriberHandler exposes the newsletter subscriber endpoints.
type SubscriberHandler struct {
	subscribers *service.SubscriberService
}

// NewSubscriberHandler constructs SubscriberHandler.
func NewSubscriberHandler(subscribers *service.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{subscribers: subscribers}
}

// List godoc
// @Summary List newsletter subscribers
// @Tags Newsletter
// @Produce json
// @Param verified query bool false "Filter by verification"
// @Param search query string false "Search by email"
// @Success 200 {object} response.Envelope
// @Router /admin/subscribers [get]
func (h *SubscriberHandler) List(c *gin.Context) {
	var req dto.SubscriberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	subscribers, pagination, err := h.subscribers.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subscribers, pagination)
}

// Delete godoc
// @Summary Remove a subscriber
// @Tags Newsletter
// @Param id path string true "Subscriber ID"
// @Success 204
// @Router /admin/subscribers/{id} [delete]
func (h *SubscriberHandler) Delete(c *gin.Context) {
	if err := h.subscribers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
