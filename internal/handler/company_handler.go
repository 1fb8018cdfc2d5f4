package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/service"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
	"github.com/workhive/jobportal-api/pkg/response"
)

// CompanyHandler exposes the admin companies endpoints.
type CompanyHandler struct {
	companies *service.CompanyService
}

// NewCompanyHandler constructs CompanyHandler.
func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// List godoc
// @Summary List companies
// @Tags Companies
// @Produce json
// @Param industry query string false "Filter by industry"
// @Param verified query bool false "Filter by verification"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Envelope
// @Router /admin/companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.CompanyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	companies, pagination, err := h.companies.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, companies, pagination)
}
