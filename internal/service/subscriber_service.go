package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

type subscriberRepository interface {
	FindByID(ctx context.Context, id string) (*models.Subscriber, error)
	Delete(ctx context.Context, id string) error
}

// SubscriberService orchestrates the newsletter subscribers surface.
type SubscriberService struct {
	store  entityStore
	repo   subscriberRepository
	logger *zap.Logger
}

// NewSubscriberService constructs a SubscriberService.
func NewSubscriberService(store entityStore, repo subscriberRepository, logger *zap.Logger) *SubscriberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriberService{store: store, repo: repo, logger: logger}
}

// List returns a filtered page of subscribers.
func (s *SubscriberService) List(ctx context.Context, req dto.SubscriberListRequest) ([]models.Subscriber, *models.Pagination, error) {
	filters := query.FilterSpec{
		"verified":     req.Verified,
		"search":       req.Search,
		"created_from": req.CreatedFrom,
		"created_to":   req.CreatedTo,
	}

	var subscribers []models.Subscriber
	pagination, err := s.store.List(ctx, "subscribers", filters, req.SortBy, req.SortDirection, req.Page, req.PerPage, &subscribers)
	if err != nil {
		return nil, nil, err
	}
	return subscribers, pagination, nil
}

// Delete removes a subscriber, honouring unsubscribe requests.
func (s *SubscriberService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "subscriber not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch subscriber")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subscriber")
	}
	return nil
}
