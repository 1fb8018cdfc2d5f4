package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/analytics"
	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
	"github.com/workhive/jobportal-api/pkg/export"
)

// ReportService produces windowed activity reports and their file exports.
type ReportService struct {
	store      entityStore
	decisions  decisionSource
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	windowDays int
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(store entityStore, decisions decisionSource, windowDays int, logger *zap.Logger) *ReportService {
	if windowDays <= 0 {
		windowDays = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:      store,
		decisions:  decisions,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		windowDays: windowDays,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Jobs builds the job-posting activity report.
func (s *ReportService) Jobs(ctx context.Context, req dto.ReportRequest) (*dto.JobsReport, error) {
	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = s.windowDays
	}
	now := s.now().UTC()
	windowStart := now.AddDate(0, 0, -windowDays)
	previousStart := now.AddDate(0, 0, -2*windowDays)

	filters := query.FilterSpec{}
	if req.Status != "" {
		filters["status"] = req.Status
	}
	if req.CompanyID != "" {
		filters["company_id"] = req.CompanyID
	}

	total, err := s.store.Count(ctx, "jobs", filters)
	if err != nil {
		return nil, err
	}
	inWindow, err := s.store.Count(ctx, "jobs", withWindow(filters, windowStart, now))
	if err != nil {
		return nil, err
	}
	previous, err := s.store.Count(ctx, "jobs", withWindow(filters, previousStart, windowStart))
	if err != nil {
		return nil, err
	}
	series, err := s.store.Aggregate(ctx, "jobs", filters, windowDays, req.Dimension)
	if err != nil {
		return nil, err
	}

	return &dto.JobsReport{
		WindowDays: windowDays,
		Total:      total,
		InWindow:   inWindow,
		GrowthRate: analytics.GrowthRate(inWindow, previous),
		Series:     series,
	}, nil
}

// Applications builds the application funnel report.
func (s *ReportService) Applications(ctx context.Context, req dto.ReportRequest) (*dto.ApplicationsReport, error) {
	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = s.windowDays
	}
	now := s.now().UTC()
	windowStart := now.AddDate(0, 0, -windowDays)
	previousStart := now.AddDate(0, 0, -2*windowDays)

	filters := query.FilterSpec{}
	if req.Status != "" {
		filters["status"] = req.Status
	}
	if req.CompanyID != "" {
		filters["company_id"] = req.CompanyID
	}

	total, err := s.store.Count(ctx, "applications", filters)
	if err != nil {
		return nil, err
	}
	inWindow, err := s.store.Count(ctx, "applications", withWindow(filters, windowStart, now))
	if err != nil {
		return nil, err
	}
	previous, err := s.store.Count(ctx, "applications", withWindow(filters, previousStart, windowStart))
	if err != nil {
		return nil, err
	}
	accepted, err := s.store.Count(ctx, "applications", withWindowStatus(filters, windowStart, now, models.ApplicationStatusAccepted))
	if err != nil {
		return nil, err
	}
	rejected, err := s.store.Count(ctx, "applications", withWindowStatus(filters, windowStart, now, models.ApplicationStatusRejected))
	if err != nil {
		return nil, err
	}
	series, err := s.store.Aggregate(ctx, "applications", filters, windowDays, req.Dimension)
	if err != nil {
		return nil, err
	}

	report := &dto.ApplicationsReport{
		WindowDays:     windowDays,
		Total:          total,
		InWindow:       inWindow,
		GrowthRate:     analytics.GrowthRate(inWindow, previous),
		ConversionRate: analytics.ConversionRate(accepted, inWindow),
		RejectionRate:  analytics.ConversionRate(rejected, inWindow),
		Series:         series,
	}

	if s.decisions != nil {
		windows, err := s.decisions.DecisionWindows(ctx, windowStart)
		if err != nil {
			return nil, err
		}
		spans := make([]analytics.Span, 0, len(windows))
		for _, w := range windows {
			spans = append(spans, analytics.Span{Start: w.CreatedAt, End: w.DecidedAt})
		}
		report.AvgDecisionDays = analytics.AverageDurationDays(spans)
	}
	return report, nil
}

// ExportSeries renders a report's daily series to the requested format.
// Supported formats are csv and pdf.
func (s *ReportService) ExportSeries(series []query.TimeBucket, title, format string) ([]byte, string, error) {
	dataset := seriesDataset(series)
	switch format {
	case "csv":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Validationf("format", "unsupported export format %q", format)
	}
}

func seriesDataset(series []query.TimeBucket) export.Dataset {
	dataset := export.Dataset{Headers: []string{"date", "dimension", "count"}}
	for _, bucket := range series {
		dataset.Append(map[string]string{
			"date":      bucket.Date.Format("2006-01-02"),
			"dimension": bucket.Dimension,
			"count":     strconv.Itoa(bucket.Count),
		})
	}
	return dataset
}

func withWindow(filters query.FilterSpec, from, to time.Time) query.FilterSpec {
	merged := query.FilterSpec{"created_from": from, "created_to": to}
	for k, v := range filters {
		merged[k] = v
	}
	return merged
}

func withWindowStatus(filters query.FilterSpec, from, to time.Time, status models.ApplicationStatus) query.FilterSpec {
	merged := withWindow(filters, from, to)
	merged["status"] = string(status)
	return merged
}
