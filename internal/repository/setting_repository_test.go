package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/jobportal-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSettingRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingRepository(db)

	rows := sqlmock.NewRows([]string{"group_name", "key", "value", "type", "updated_by", "updated_at"}).
		AddRow("jobs", "default_expiry_days", "45", "INTEGER", nil, time.Now()).
		AddRow("general", "maintenance_mode", "true", "BOOLEAN", "admin-1", time.Now())
	mock.ExpectQuery("SELECT group_name, key, value, type, updated_by, updated_at\\s+FROM settings ORDER BY group_name ASC, key ASC").
		WillReturnRows(rows)

	settings, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "jobs", settings[0].Group)
	assert.Equal(t, "45", settings[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingRepository(db)

	mock.ExpectExec("INSERT INTO settings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.Setting{
		Group: "jobs",
		Key:   "default_expiry_days",
		Value: "45",
		Type:  models.SettingTypeInteger,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositoryBulkUpsertTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO settings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO settings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.BulkUpsert(context.Background(), []models.Setting{
		{Group: "jobs", Key: "default_expiry_days", Value: "45", Type: models.SettingTypeInteger},
		{Group: "jobs", Key: "auto_approve", Value: "true", Type: models.SettingTypeBoolean},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositoryBulkUpsertSingleSkipsTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingRepository(db)

	// One override goes through Upsert directly; no Begin/Commit expected.
	mock.ExpectExec("INSERT INTO settings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.BulkUpsert(context.Background(), []models.Setting{
		{Group: "jobs", Key: "default_expiry_days", Value: "45", Type: models.SettingTypeInteger},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositoryBulkUpsertEmptyIsNoop(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingRepository(db)

	require.NoError(t, repo.BulkUpsert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
