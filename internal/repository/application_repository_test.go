package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/jobportal-api/internal/models"
)

func TestApplicationRepositoryDecideStampsDecidedAt(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET status = $2, decided_at = $3, updated_at = $3 WHERE id = $1")).
		WithArgs("app-1", models.ApplicationStatusAccepted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "app-1", models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryNonTerminalStatusLeavesDecidedAt(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("app-1", models.ApplicationStatusReviewed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "app-1", models.ApplicationStatusReviewed)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryDecisionWindows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"created_at", "decided_at"}).
		AddRow(since.AddDate(0, 0, 3), since.AddDate(0, 0, 5)).
		AddRow(since.AddDate(0, 0, 10), since.AddDate(0, 0, 11))
	mock.ExpectQuery("SELECT created_at, decided_at FROM applications\\s+WHERE decided_at IS NOT NULL AND decided_at >= \\$1").
		WithArgs(since).
		WillReturnRows(rows)

	windows, err := repo.DecisionWindows(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, since.AddDate(0, 0, 5), windows[0].DecidedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
