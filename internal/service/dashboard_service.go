package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/analytics"
	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
)

type decisionSource interface {
	DecisionWindows(ctx context.Context, since time.Time) ([]models.DecisionWindow, error)
}

// DashboardService composes the admin dashboard from windowed counts, daily
// activity series and derived rates.
type DashboardService struct {
	store      entityStore
	decisions  decisionSource
	cache      *CacheService
	cacheTTL   time.Duration
	windowDays int
	logger     *zap.Logger
	now        func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(store entityStore, decisions decisionSource, cache *CacheService, cacheTTL time.Duration, windowDays int, logger *zap.Logger) *DashboardService {
	if windowDays <= 0 {
		windowDays = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		store:      store,
		decisions:  decisions,
		cache:      cache,
		cacheTTL:   cacheTTL,
		windowDays: windowDays,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Overview assembles the dashboard payload. The payload is cached whole;
// a write anywhere in the underlying tables may be reflected only after the
// cache entry expires.
func (s *DashboardService) Overview(ctx context.Context, windowDays int) (*dto.DashboardResponse, error) {
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	cacheKey := fmt.Sprintf("dashboard:overview:%d", windowDays)
	if s.cache != nil {
		var cached dto.DashboardResponse
		if s.cache.Get(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	resp, err := s.build(ctx, windowDays)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, resp, s.cacheTTL)
	}
	return resp, nil
}

func (s *DashboardService) build(ctx context.Context, windowDays int) (*dto.DashboardResponse, error) {
	now := s.now().UTC()
	windowStart := now.AddDate(0, 0, -windowDays)
	previousStart := now.AddDate(0, 0, -2*windowDays)

	totals, err := s.totals(ctx)
	if err != nil {
		return nil, err
	}

	jobsCurrent, err := s.store.Count(ctx, "jobs", windowFilter(windowStart, now))
	if err != nil {
		return nil, err
	}
	jobsPrevious, err := s.store.Count(ctx, "jobs", windowFilter(previousStart, windowStart))
	if err != nil {
		return nil, err
	}
	usersCurrent, err := s.store.Count(ctx, "users", windowFilter(windowStart, now))
	if err != nil {
		return nil, err
	}
	usersPrevious, err := s.store.Count(ctx, "users", windowFilter(previousStart, windowStart))
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationMetrics(ctx, windowStart, now)
	if err != nil {
		return nil, err
	}

	registrations, err := s.store.Aggregate(ctx, "users", nil, windowDays, "")
	if err != nil {
		return nil, err
	}
	jobPostings, err := s.store.Aggregate(ctx, "jobs", nil, windowDays, "")
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		WindowDays: windowDays,
		Totals:     totals,
		Growth: dto.DashboardGrowth{
			Jobs:  analytics.GrowthRate(jobsCurrent, jobsPrevious),
			Users: analytics.GrowthRate(usersCurrent, usersPrevious),
		},
		Applications:  applications,
		Registrations: registrations,
		JobPostings:   jobPostings,
	}, nil
}

func (s *DashboardService) totals(ctx context.Context) (dto.DashboardTotals, error) {
	var totals dto.DashboardTotals
	var err error
	if totals.Jobs, err = s.store.Count(ctx, "jobs", nil); err != nil {
		return totals, err
	}
	if totals.OpenJobs, err = s.store.Count(ctx, "jobs", query.FilterSpec{"status": string(models.JobStatusOpen)}); err != nil {
		return totals, err
	}
	if totals.Companies, err = s.store.Count(ctx, "companies", nil); err != nil {
		return totals, err
	}
	if totals.Users, err = s.store.Count(ctx, "users", nil); err != nil {
		return totals, err
	}
	if totals.Applications, err = s.store.Count(ctx, "applications", nil); err != nil {
		return totals, err
	}
	return totals, nil
}

func (s *DashboardService) applicationMetrics(ctx context.Context, windowStart, now time.Time) (dto.DashboardApplications, error) {
	var metrics dto.DashboardApplications

	total, err := s.store.Count(ctx, "applications", windowFilter(windowStart, now))
	if err != nil {
		return metrics, err
	}
	accepted, err := s.store.Count(ctx, "applications", windowFilterWith(windowStart, now, "status", string(models.ApplicationStatusAccepted)))
	if err != nil {
		return metrics, err
	}
	rejected, err := s.store.Count(ctx, "applications", windowFilterWith(windowStart, now, "status", string(models.ApplicationStatusRejected)))
	if err != nil {
		return metrics, err
	}

	metrics.ConversionRate = analytics.ConversionRate(accepted, total)
	metrics.RejectionRate = analytics.ConversionRate(rejected, total)

	if s.decisions != nil {
		windows, err := s.decisions.DecisionWindows(ctx, windowStart)
		if err != nil {
			return metrics, err
		}
		spans := make([]analytics.Span, 0, len(windows))
		for _, w := range windows {
			spans = append(spans, analytics.Span{Start: w.CreatedAt, End: w.DecidedAt})
		}
		metrics.AvgDecisionDays = analytics.AverageDurationDays(spans)
	}
	return metrics, nil
}

func windowFilter(from, to time.Time) query.FilterSpec {
	return query.FilterSpec{"created_from": from, "created_to": to}
}

func windowFilterWith(from, to time.Time, key, value string) query.FilterSpec {
	filters := windowFilter(from, to)
	filters[key] = value
	return filters
}
