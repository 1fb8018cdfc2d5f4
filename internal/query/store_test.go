package query

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/jobportal-api/internal/models"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

func newStoreMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	store := NewStore(sqlx.NewDb(db, "postgres"), nil, Config{DefaultPageSize: 20, MaxPageSize: 100})
	return store, mock, func() { db.Close() }
}

func jobColumns() []string {
	return []string{"id", "company_id", "title", "slug", "status", "category", "location", "featured", "salary_min", "salary_max", "expires_at", "created_at", "updated_at"}
}

func TestStoreListPageAndCountShareFilter(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(jobColumns()).
		AddRow("j-1", "c-1", "Backend Engineer", "backend-engineer", "OPEN", "engineering", "Remote", false, nil, nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT j.id, j.company_id, j.title, j.slug, j.status, j.category, j.location, j.featured, j.salary_min, j.salary_max, j.expires_at, j.created_at, j.updated_at FROM jobs j WHERE 1=1 AND j.status = $1 ORDER BY j.created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("OPEN").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM jobs j WHERE 1=1 AND j.status = $1")).
		WithArgs("OPEN").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

	var jobs []models.Job
	pagination, err := store.List(context.Background(), "jobs", FilterSpec{"status": "OPEN"}, "", "", 0, 0, &jobs)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 41}, pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListRejectsUnknownSort(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	var jobs []models.Job
	_, err := store.List(context.Background(), "jobs", nil, "secret_column", "asc", 1, 20, &jobs)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCount(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users u WHERE 1=1 AND u.role = $1")).
		WithArgs("CANDIDATE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := store.Count(context.Background(), "users", FilterSpec{"role": "CANDIDATE"})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRelatedBatchesAndDedupes(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "industry", "website", "verified", "created_at", "updated_at"}).
		AddRow("c-1", "Acme", "software", nil, true, now, now).
		AddRow("c-2", "Globex", "finance", nil, false, now, now)

	// One IN query for the whole page, duplicates and blanks dropped.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, industry, website, verified, created_at, updated_at FROM companies WHERE id IN ($1, $2)")).
		WithArgs("c-1", "c-2").
		WillReturnRows(rows)

	var companies []models.Company
	err := store.Related(context.Background(), "jobs", "company", []string{"c-1", "c-2", "c-1", ""}, &companies)
	require.NoError(t, err)
	assert.Len(t, companies, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRelatedEmptyKeysLoadsNothing(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	var companies []models.Company
	err := store.Related(context.Background(), "jobs", "company", nil, &companies)
	require.NoError(t, err)
	assert.Empty(t, companies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRelatedPanicsOnUnknownRelation(t *testing.T) {
	store, _, cleanup := newStoreMock(t)
	defer cleanup()

	var companies []models.Company
	assert.Panics(t, func() {
		_ = store.Related(context.Background(), "jobs", "owner", []string{"c-1"}, &companies)
	})
}

func TestStoreObserverRecordsOperations(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	var ops []string
	store = store.WithObserver(func(collection, operation string, _ time.Duration) {
		ops = append(ops, collection+"/"+operation)
	})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT j.id, j.company_id, j.title, j.slug, j.status, j.category, j.location, j.featured, j.salary_min, j.salary_max, j.expires_at, j.created_at, j.updated_at FROM jobs j WHERE 1=1 ORDER BY j.created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(jobColumns()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM jobs j WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users u WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var jobs []models.Job
	_, err := store.List(context.Background(), "jobs", nil, "", "", 1, 20, &jobs)
	require.NoError(t, err)

	_, err = store.Count(context.Background(), "users", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"jobs/query", "users/count"}, ops)
	assert.NoError(t, mock.ExpectationsWereMet())
}
