package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

type applicationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}

// ApplicationService orchestrates the admin applications surface.
type ApplicationService struct {
	store     entityStore
	repo      applicationRepository
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(store entityStore, repo applicationRepository, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{store: store, repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns a filtered page of applications with their jobs and
// applicants attached.
func (s *ApplicationService) List(ctx context.Context, req dto.ApplicationListRequest) ([]dto.ApplicationItem, *models.Pagination, error) {
	filters := query.FilterSpec{
		"status":       strings.ToUpper(req.Status),
		"job_id":       req.JobID,
		"user_id":      req.UserID,
		"company_id":   req.CompanyID,
		"created_from": req.CreatedFrom,
		"created_to":   req.CreatedTo,
	}

	var applications []models.Application
	pagination, err := s.store.List(ctx, "applications", filters, req.SortBy, req.SortDirection, req.Page, req.PerPage, &applications)
	if err != nil {
		return nil, nil, err
	}

	jobIDs := make([]string, 0, len(applications))
	userIDs := make([]string, 0, len(applications))
	for _, application := range applications {
		jobIDs = append(jobIDs, application.JobID)
		userIDs = append(userIDs, application.UserID)
	}

	var jobs []models.Job
	if err := s.store.Related(ctx, "applications", "job", jobIDs, &jobs); err != nil {
		return nil, nil, err
	}
	var users []models.User
	if err := s.store.Related(ctx, "applications", "user", userIDs, &users); err != nil {
		return nil, nil, err
	}

	jobByID := make(map[string]models.Job, len(jobs))
	for _, job := range jobs {
		jobByID[job.ID] = job
	}
	userByID := make(map[string]models.User, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	items := make([]dto.ApplicationItem, 0, len(applications))
	for _, application := range applications {
		item := dto.ApplicationItem{Application: application}
		if job, ok := jobByID[application.JobID]; ok {
			item.JobTitle = job.Title
		}
		if user, ok := userByID[application.UserID]; ok {
			item.ApplicantName = user.FullName
			item.ApplicantEmail = user.Email
		}
		items = append(items, item)
	}
	return items, pagination, nil
}

// Get fetches a single application.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch application")
	}
	return application, nil
}

// Decide transitions an application's review status. Terminal decisions
// stamp the decision timestamp used by time-to-decision reporting.
func (s *ApplicationService) Decide(ctx context.Context, id string, req dto.DecideApplicationRequest, actor *models.JWTClaims) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, models.ApplicationStatus(req.Status)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application status")
	}
	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		oldValues, _ := json.Marshal(map[string]string{"status": string(current.Status)})
		newValues, _ := json.Marshal(map[string]string{"status": req.Status})
		entry := &models.AuditLog{
			UserID:     actorID(actor),
			Action:     models.AuditActionApplicationDecide,
			Resource:   "application",
			ResourceID: &id,
			OldValues:  oldValues,
			NewValues:  newValues,
			IPAddress:  "system",
			UserAgent:  "application-service",
		}
		if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
			s.logger.Warn("failed to record application audit", zap.Error(err))
		}
	}
	return updated, nil
}
