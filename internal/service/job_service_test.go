package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

type fakeJobRepo struct {
	jobs         map[string]*models.Job
	hasApps      bool
	created      []*models.Job
	statusCalls  []models.JobStatus
	deletedIDs   []string
	hasAppsCalls int
}

func (f *fakeJobRepo) FindByID(ctx context.Context, id string) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return job, nil
}

func (f *fakeJobRepo) Create(ctx context.Context, job *models.Job) error {
	job.ID = "j-new"
	f.created = append(f.created, job)
	return nil
}

func (f *fakeJobRepo) UpdateStatus(ctx context.Context, id string, status models.JobStatus) error {
	f.statusCalls = append(f.statusCalls, status)
	if job, ok := f.jobs[id]; ok {
		job.Status = status
	}
	return nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeJobRepo) HasApplications(ctx context.Context, id string) (bool, error) {
	f.hasAppsCalls++
	return f.hasApps, nil
}

func TestJobListAttachesCompanies(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		listFn: func(name string, filters query.FilterSpec, dest interface{}) (*models.Pagination, error) {
			assert.Equal(t, "jobs", name)
			jobs := dest.(*[]models.Job)
			*jobs = []models.Job{
				{ID: "j-1", CompanyID: "c-1", Title: "Backend Engineer", CreatedAt: now},
				{ID: "j-2", CompanyID: "c-2", Title: "Designer", CreatedAt: now},
				{ID: "j-3", CompanyID: "c-1", Title: "SRE", CreatedAt: now},
			}
			return &models.Pagination{Page: 1, PageSize: 20, TotalCount: 3}, nil
		},
		relatedFn: func(name, relation string, keys []string, dest interface{}) error {
			assert.Equal(t, "company", relation)
			assert.ElementsMatch(t, []string{"c-1", "c-2", "c-1"}, keys)
			companies := dest.(*[]models.Company)
			*companies = []models.Company{
				{ID: "c-1", Name: "Acme", Industry: "software"},
				{ID: "c-2", Name: "Globex", Industry: "finance"},
			}
			return nil
		},
	}
	svc := NewJobService(store, &fakeJobRepo{}, nil, nil, nil, nil)

	items, pagination, err := svc.List(context.Background(), dto.JobListRequest{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 3, pagination.TotalCount)
	assert.Equal(t, "Acme", items[0].CompanyName)
	assert.Equal(t, "Globex", items[1].CompanyName)
	assert.Equal(t, "software", items[2].CompanyIndustry)
}

func TestJobGetNotFound(t *testing.T) {
	svc := NewJobService(&fakeStore{}, &fakeJobRepo{jobs: map[string]*models.Job{}}, nil, nil, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestJobCreateDefaultsSlugAndExpiry(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[string]*models.Job{}}
	audit := &fakeAudit{}
	svc := NewJobService(&fakeStore{}, repo, nil, audit, nil, nil)

	job, err := svc.Create(context.Background(), dto.CreateJobRequest{
		CompanyID: "a1b2c3d4-e5f6-4789-8abc-def012345678",
		Title:     "Senior Backend Engineer (Go)",
		Category:  "engineering",
		Location:  "Remote",
	}, &models.JWTClaims{UserID: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, "senior-backend-engineer-go", job.Slug)
	assert.Equal(t, models.JobStatusOpen, job.Status)
	require.NotNil(t, job.ExpiresAt)
	expected := time.Now().UTC().AddDate(0, 0, 30)
	assert.WithinDuration(t, expected, *job.ExpiresAt, time.Minute)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionJobCreate, audit.entries[0].Action)
}

func TestJobCreateInvalidPayload(t *testing.T) {
	svc := NewJobService(&fakeStore{}, &fakeJobRepo{}, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateJobRequest{Title: "x"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestJobDeleteClosesWhenApplicationsExist(t *testing.T) {
	repo := &fakeJobRepo{
		jobs:    map[string]*models.Job{"j-1": {ID: "j-1", Status: models.JobStatusOpen}},
		hasApps: true,
	}
	svc := NewJobService(&fakeStore{}, repo, nil, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "j-1", nil))
	assert.Empty(t, repo.deletedIDs)
	require.Len(t, repo.statusCalls, 1)
	assert.Equal(t, models.JobStatusClosed, repo.statusCalls[0])
}

func TestJobDeleteRemovesWhenNoApplications(t *testing.T) {
	repo := &fakeJobRepo{
		jobs: map[string]*models.Job{"j-1": {ID: "j-1", Status: models.JobStatusDraft}},
	}
	svc := NewJobService(&fakeStore{}, repo, nil, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "j-1", nil))
	assert.Equal(t, []string{"j-1"}, repo.deletedIDs)
	assert.Empty(t, repo.statusCalls)
}
