package query

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

func TestAggregateDailyCounts(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return fixed })

	day1 := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"bucket_date", "total"}).
		AddRow(day1, 3).
		AddRow(day2, 5)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATE(u.created_at) AS bucket_date, COUNT(*) AS total FROM users u WHERE 1=1 AND u.created_at >= $1 GROUP BY DATE(u.created_at) ORDER BY bucket_date ASC")).
		WithArgs(fixed.AddDate(0, 0, -7)).
		WillReturnRows(rows)

	buckets, err := store.Aggregate(context.Background(), "users", nil, 7, "")
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, 3, buckets[0].Count)
	assert.Equal(t, day2, buckets[1].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateWithDimension(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return fixed })

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"bucket_date", "dimension", "total"}).
		AddRow(day, "ACCEPTED", 2).
		AddRow(day, "PENDING", 9)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATE(a.created_at) AS bucket_date, a.status::text AS dimension, COUNT(*) AS total FROM applications a WHERE 1=1 AND a.created_at >= $1 GROUP BY DATE(a.created_at), a.status ORDER BY bucket_date ASC, dimension ASC")).
		WithArgs(fixed.AddDate(0, 0, -30)).
		WillReturnRows(rows)

	buckets, err := store.Aggregate(context.Background(), "applications", nil, 30, "status")
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "ACCEPTED", buckets[0].Dimension)
	assert.Equal(t, 9, buckets[1].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateCombinesFilterWithWindow(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return fixed })

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATE(j.created_at) AS bucket_date, COUNT(*) AS total FROM jobs j WHERE 1=1 AND j.status = $1 AND j.created_at >= $2 GROUP BY DATE(j.created_at) ORDER BY bucket_date ASC")).
		WithArgs("OPEN", fixed.AddDate(0, 0, -14)).
		WillReturnRows(sqlmock.NewRows([]string{"bucket_date", "total"}))

	buckets, err := store.Aggregate(context.Background(), "jobs", FilterSpec{"status": "OPEN"}, 14, "")
	require.NoError(t, err)
	assert.Empty(t, buckets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateValidation(t *testing.T) {
	store, _, cleanup := newStoreMock(t)
	defer cleanup()

	_, err := store.Aggregate(context.Background(), "jobs", nil, 0, "")
	require.Error(t, err)
	assert.Equal(t, "window_days", appErrors.FromError(err).Field)

	_, err = store.Aggregate(context.Background(), "jobs", nil, 7, "salary")
	require.Error(t, err)
	assert.Equal(t, "dimension", appErrors.FromError(err).Field)
}
