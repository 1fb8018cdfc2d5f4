package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/service"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
	"github.com/workhive/jobportal-api/pkg/response"
)

// ReviewHandler exposes the review moderation endpoints.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List godoc
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Param company_id query string false "Filter by company"
// @Param approved query bool false "Filter by moderation state"
// @Param rating_from query int false "Minimum rating"
// @Param rating_to query int false "Maximum rating"
// @Success 200 {object} response.Envelope
// @Router /admin/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	var req dto.ReviewListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	items, pagination, err := h.reviews.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Approve godoc
// @Summary Approve or reject a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param payload body dto.ApproveReviewRequest true "Moderation payload"
// @Success 200 {object} response.Envelope
// @Router /admin/reviews/{id}/approval [patch]
func (h *ReviewHandler) Approve(c *gin.Context) {
	var req dto.ApproveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		response.Error(c, appErrors.Validationf("approved", "approved flag is required"))
		return
	}
	review, err := h.reviews.Approve(c.Request.Context(), c.Param("id"), *req.Approved, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, review, nil)
}
