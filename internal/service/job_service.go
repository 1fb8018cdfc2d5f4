package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

// entityStore is the declarative query engine surface consumed by the admin
// listing and reporting services.
type entityStore interface {
	List(ctx context.Context, name string, filters query.FilterSpec, sortBy, sortDir string, page, size int, dest interface{}) (*models.Pagination, error)
	Related(ctx context.Context, name, relation string, keys []string, dest interface{}) error
	Count(ctx context.Context, name string, filters query.FilterSpec) (int, error)
	Aggregate(ctx context.Context, name string, filters query.FilterSpec, windowDays int, dimension string) ([]query.TimeBucket, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

type jobRepository interface {
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	UpdateStatus(ctx context.Context, id string, status models.JobStatus) error
	Delete(ctx context.Context, id string) error
	HasApplications(ctx context.Context, id string) (bool, error)
}

// JobService orchestrates the admin jobs surface.
type JobService struct {
	store     entityStore
	repo      jobRepository
	settings  *SettingsService
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJobService constructs a JobService.
func NewJobService(store entityStore, repo jobRepository, settings *SettingsService, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *JobService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{store: store, repo: repo, settings: settings, audit: audit, validator: validate, logger: logger}
}

// List returns a filtered page of jobs with their companies attached.
func (s *JobService) List(ctx context.Context, req dto.JobListRequest) ([]dto.JobItem, *models.Pagination, error) {
	filters := query.FilterSpec{
		"status":       strings.ToUpper(req.Status),
		"company_id":   req.CompanyID,
		"category":     req.Category,
		"location":     req.Location,
		"search":       req.Search,
		"featured":     req.Featured,
		"salary_from":  req.SalaryFrom,
		"salary_to":    req.SalaryTo,
		"created_from": req.CreatedFrom,
		"created_to":   req.CreatedTo,
	}

	var jobs []models.Job
	pagination, err := s.store.List(ctx, "jobs", filters, req.SortBy, req.SortDirection, req.Page, req.PerPage, &jobs)
	if err != nil {
		return nil, nil, err
	}

	companyIDs := make([]string, 0, len(jobs))
	for _, job := range jobs {
		companyIDs = append(companyIDs, job.CompanyID)
	}
	var companies []models.Company
	if err := s.store.Related(ctx, "jobs", "company", companyIDs, &companies); err != nil {
		return nil, nil, err
	}
	byID := make(map[string]models.Company, len(companies))
	for _, company := range companies {
		byID[company.ID] = company
	}

	items := make([]dto.JobItem, 0, len(jobs))
	for _, job := range jobs {
		item := dto.JobItem{Job: job}
		if company, ok := byID[job.CompanyID]; ok {
			item.CompanyName = company.Name
			item.CompanyIndustry = company.Industry
		}
		items = append(items, item)
	}
	return items, pagination, nil
}

// Get fetches a single job.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch job")
	}
	return job, nil
}

// Create publishes a new job posting. The expiry defaults from the jobs
// settings group.
func (s *JobService) Create(ctx context.Context, req dto.CreateJobRequest, actor *models.JWTClaims) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, s.defaultExpiryDays(ctx))
	job := &models.Job{
		CompanyID: req.CompanyID,
		Title:     req.Title,
		Slug:      slug,
		Status:    models.JobStatusOpen,
		Category:  req.Category,
		Location:  req.Location,
		Featured:  req.Featured,
		SalaryMin: req.SalaryMin,
		SalaryMax: req.SalaryMax,
		ExpiresAt: &expiresAt,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}

	s.emitAudit(ctx, actor, models.AuditActionJobCreate, job.ID, job)
	return job, nil
}

// UpdateStatus transitions a job's publication status.
func (s *JobService) UpdateStatus(ctx context.Context, id string, req dto.UpdateJobStatusRequest, actor *models.JWTClaims) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, models.JobStatus(req.Status)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job status")
	}

	s.emitAudit(ctx, actor, models.AuditActionJobStatusChange, id, map[string]string{"status": req.Status})
	return s.Get(ctx, id)
}

// Delete removes a job. Jobs that already received applications are closed
// instead of removed so applicants keep their history.
func (s *JobService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	hasApps, err := s.repo.HasApplications(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check job applications")
	}
	if hasApps {
		if err := s.repo.UpdateStatus(ctx, id, models.JobStatusClosed); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close job")
		}
		s.emitAudit(ctx, actor, models.AuditActionJobStatusChange, id, map[string]string{"status": string(models.JobStatusClosed)})
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete job")
	}
	s.emitAudit(ctx, actor, models.AuditActionJobDelete, id, nil)
	return nil
}

func (s *JobService) defaultExpiryDays(ctx context.Context) int {
	if s.settings == nil {
		return 30
	}
	group, err := s.settings.GetGroup(ctx, "jobs")
	if err != nil {
		return 30
	}
	if days, ok := group.Values["default_expiry_days"].(int); ok && days > 0 {
		return days
	}
	return 30
}

func (s *JobService) emitAudit(ctx context.Context, actor *models.JWTClaims, action, jobID string, payload interface{}) {
	if s.audit == nil {
		return
	}
	var encoded []byte
	if payload != nil {
		encoded, _ = json.Marshal(payload)
	}
	entry := &models.AuditLog{
		UserID:     actorID(actor),
		Action:     action,
		Resource:   "job",
		ResourceID: &jobID,
		NewValues:  encoded,
		IPAddress:  "system",
		UserAgent:  "job-service",
	}
	if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record job audit", zap.Error(err))
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
