package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

// AuditService exposes the audit trail listing.
type AuditService struct {
	store  entityStore
	logger *zap.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(store entityStore, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{store: store, logger: logger}
}

// List returns a filtered page of audit entries. The audit table is optional
// infrastructure; when the store cannot serve it the listing degrades to an
// empty page instead of failing the admin surface. Caller mistakes such as an
// unknown sort column still surface as validation errors.
func (s *AuditService) List(ctx context.Context, req dto.AuditLogListRequest) ([]models.AuditLog, *models.Pagination, error) {
	filters := query.FilterSpec{
		"action":       req.Action,
		"resource":     req.Resource,
		"user_id":      req.UserID,
		"created_from": req.CreatedFrom,
		"created_to":   req.CreatedTo,
	}

	var entries []models.AuditLog
	pagination, err := s.store.List(ctx, "audit_logs", filters, req.SortBy, req.SortDirection, req.Page, req.PerPage, &entries)
	if err != nil {
		if errors.Is(err, appErrors.ErrValidation) {
			return nil, nil, err
		}
		s.logger.Warn("audit store unavailable, serving empty page", zap.Error(err))
		return []models.AuditLog{}, &models.Pagination{Page: 1, PageSize: 0, TotalCount: 0}, nil
	}
	return entries, pagination, nil
}
