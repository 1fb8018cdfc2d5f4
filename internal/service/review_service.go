package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

type reviewRepository interface {
	FindByID(ctx context.Context, id string) (*models.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
}

// ReviewService orchestrates the review moderation surface.
type ReviewService struct {
	store  entityStore
	repo   reviewRepository
	audit  auditLogger
	logger *zap.Logger
}

// NewReviewService constructs a ReviewService.
func NewReviewService(store entityStore, repo reviewRepository, audit auditLogger, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{store: store, repo: repo, audit: audit, logger: logger}
}

// List returns a filtered page of reviews with their companies attached.
func (s *ReviewService) List(ctx context.Context, req dto.ReviewListRequest) ([]dto.ReviewItem, *models.Pagination, error) {
	filters := query.FilterSpec{
		"company_id":   req.CompanyID,
		"approved":     req.Approved,
		"rating_from":  req.RatingFrom,
		"rating_to":    req.RatingTo,
		"created_from": req.CreatedFrom,
		"created_to":   req.CreatedTo,
	}

	var reviews []models.Review
	pagination, err := s.store.List(ctx, "reviews", filters, req.SortBy, req.SortDirection, req.Page, req.PerPage, &reviews)
	if err != nil {
		return nil, nil, err
	}

	companyIDs := make([]string, 0, len(reviews))
	for _, review := range reviews {
		companyIDs = append(companyIDs, review.CompanyID)
	}
	var companies []models.Company
	if err := s.store.Related(ctx, "reviews", "company", companyIDs, &companies); err != nil {
		return nil, nil, err
	}
	byID := make(map[string]models.Company, len(companies))
	for _, company := range companies {
		byID[company.ID] = company
	}

	items := make([]dto.ReviewItem, 0, len(reviews))
	for _, review := range reviews {
		item := dto.ReviewItem{Review: review}
		if company, ok := byID[review.CompanyID]; ok {
			item.CompanyName = company.Name
		}
		items = append(items, item)
	}
	return items, pagination, nil
}

// Approve flips a review's moderation flag.
func (s *ReviewService) Approve(ctx context.Context, id string, approved bool, actor *models.JWTClaims) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "review not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch review")
	}

	if err := s.repo.SetApproved(ctx, id, approved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update review")
	}

	if s.audit != nil {
		oldValues, _ := json.Marshal(map[string]bool{"approved": review.Approved})
		newValues, _ := json.Marshal(map[string]bool{"approved": approved})
		entry := &models.AuditLog{
			UserID:     actorID(actor),
			Action:     models.AuditActionReviewApprove,
			Resource:   "review",
			ResourceID: &id,
			OldValues:  oldValues,
			NewValues:  newValues,
			IPAddress:  "system",
			UserAgent:  "review-service",
		}
		if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
			s.logger.Warn("failed to record review audit", zap.Error(err))
		}
	}

	review.Approved = approved
	return review, nil
}
