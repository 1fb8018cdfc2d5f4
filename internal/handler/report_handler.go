package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/service"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
	"github.com/workhive/jobportal-api/pkg/response"
)

// ReportHandler exposes the reporting endpoints.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Jobs godoc
// @Summary Job activity report
// @Tags Reports
// @Produce json
// @Param window_days query int false "Rolling window in days"
// @Param dimension query string false "Breakdown dimension"
// @Success 200 {object} response.Envelope
// @Router /admin/reports/jobs [get]
func (h *ReportHandler) Jobs(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	report, err := h.reports.Jobs(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Applications godoc
// @Summary Application funnel report
// @Tags Reports
// @Produce json
// @Param window_days query int false "Rolling window in days"
// @Param dimension query string false "Breakdown dimension"
// @Success 200 {object} response.Envelope
// @Router /admin/reports/applications [get]
func (h *ReportHandler) Applications(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	report, err := h.reports.Applications(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// ExportJobs godoc
// @Summary Export job activity series
// @Tags Reports
// @Produce text/csv
// @Param window_days query int false "Rolling window in days"
// @Param dimension query string false "Breakdown dimension"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /admin/reports/jobs/export [get]
func (h *ReportHandler) ExportJobs(c *gin.Context) {
	h.export(c, "jobs-report", func(req dto.ReportRequest) ([]byte, string, error) {
		report, err := h.reports.Jobs(c.Request.Context(), req)
		if err != nil {
			return nil, "", err
		}
		return h.reports.ExportSeries(report.Series, "Jobs Report", c.DefaultQuery("format", "csv"))
	})
}

// ExportApplications godoc
// @Summary Export application activity series
// @Tags Reports
// @Produce text/csv
// @Param window_days query int false "Rolling window in days"
// @Param dimension query string false "Breakdown dimension"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /admin/reports/applications/export [get]
func (h *ReportHandler) ExportApplications(c *gin.Context) {
	h.export(c, "applications-report", func(req dto.ReportRequest) ([]byte, string, error) {
		report, err := h.reports.Applications(c.Request.Context(), req)
		if err != nil {
			return nil, "", err
		}
		return h.reports.ExportSeries(report.Series, "Applications Report", c.DefaultQuery("format", "csv"))
	})
}

func (h *ReportHandler) export(c *gin.Context, name string, build func(dto.ReportRequest) ([]byte, string, error)) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	payload, contentType, err := build(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().UTC().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
