package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/service"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
	"github.com/workhive/jobportal-api/pkg/response"
)

// BlogHandler exposes the admin blog endpoints.
type BlogHandler struct {
	blog *service.BlogService
}

// NewBlogHandler constructs BlogHandler.
func NewBlogHandler(blog *service.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// List godoc
// @Summary List blog posts
// @Tags Blog
// @Produce json
// @Param published query bool false "Filter by publication state"
// @Param author_id query string false "Filter by author"
// @Param search query string false "Search by title"
// @Success 200 {object} response.Envelope
// @Router /admin/blog-posts [get]
func (h *BlogHandler) List(c *gin.Context) {
	var req dto.BlogPostListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	items, pagination, err := h.blog.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}
