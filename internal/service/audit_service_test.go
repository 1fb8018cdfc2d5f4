package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

func TestAuditListPassesThrough(t *testing.T) {
	store := &fakeStore{
		listFn: func(name string, filters query.FilterSpec, dest interface{}) (*models.Pagination, error) {
			assert.Equal(t, "audit_logs", name)
			assert.Equal(t, "JOB_CREATE", filters["action"])
			entries := dest.(*[]models.AuditLog)
			*entries = []models.AuditLog{{Action: "JOB_CREATE", Resource: "job"}}
			return &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, nil
		},
	}
	svc := NewAuditService(store, nil)

	entries, pagination, err := svc.List(context.Background(), dto.AuditLogListRequest{Action: "JOB_CREATE"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestAuditListMasksStoreFailureAsEmptyPage(t *testing.T) {
	store := &fakeStore{
		listFn: func(name string, filters query.FilterSpec, dest interface{}) (*models.Pagination, error) {
			return nil, errors.New(`relation "audit_logs" does not exist`)
		},
	}
	svc := NewAuditService(store, nil)

	entries, pagination, err := svc.List(context.Background(), dto.AuditLogListRequest{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, pagination.TotalCount)
}

func TestAuditListSurfacesValidationErrors(t *testing.T) {
	store := &fakeStore{
		listFn: func(name string, filters query.FilterSpec, dest interface{}) (*models.Pagination, error) {
			return nil, appErrors.Validationf("sort_by", "unsupported sort field %q", "ip_address")
		},
	}
	svc := NewAuditService(store, nil)

	_, _, err := svc.List(context.Background(), dto.AuditLogListRequest{ListParams: dto.ListParams{SortBy: "ip_address"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
