package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
)

// CompanyService orchestrates the admin companies surface.
type CompanyService struct {
	store  entityStore
	logger *zap.Logger
}

// NewCompanyService constructs a CompanyService.
func NewCompanyService(store entityStore, logger *zap.Logger) *CompanyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyService{store: store, logger: logger}
}

// List returns a filtered page of companies.
func (s *CompanyService) List(ctx context.Context, req dto.CompanyListRequest) ([]models.Company, *models.Pagination, error) {
	filters := query.FilterSpec{
		"industry":     req.Industry,
		"verified":     req.Verified,
		"search":       req.Search,
		"created_from": req.CreatedFrom,
		"created_to":   req.CreatedTo,
	}

	var companies []models.Company
	pagination, err := s.store.List(ctx, "companies", filters, req.SortBy, req.SortDirection, req.Page, req.PerPage, &companies)
	if err != nil {
		return nil, nil, err
	}
	return companies, pagination, nil
}
