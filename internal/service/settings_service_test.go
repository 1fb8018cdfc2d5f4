package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

type fakeSettingRepo struct {
	rows       []models.Setting
	listErr    error
	upsertErr  error
	upserted   [][]models.Setting
	listCalled int
}

func (f *fakeSettingRepo) ListAll(ctx context.Context) ([]models.Setting, error) {
	f.listCalled++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeSettingRepo) BulkUpsert(ctx context.Context, settings []models.Setting) error {
	f.upserted = append(f.upserted, settings)
	return f.upsertErr
}

type fakeAudit struct {
	entries []*models.AuditLog
	err     error
}

func (f *fakeAudit) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func TestSettingsGetGroupServesDefaults(t *testing.T) {
	repo := &fakeSettingRepo{}
	svc := NewSettingsService(repo, nil, nil, nil, nil, 0)

	group, err := svc.GetGroup(context.Background(), "jobs")
	require.NoError(t, err)
	assert.Equal(t, "jobs", group.Group)
	assert.Equal(t, 30, group.Values["default_expiry_days"])
	assert.Equal(t, false, group.Values["auto_approve"])
}

func TestSettingsGetGroupMergesOverrides(t *testing.T) {
	repo := &fakeSettingRepo{rows: []models.Setting{
		{Group: "jobs", Key: "default_expiry_days", Value: "45", Type: models.SettingTypeInteger},
		{Group: "general", Key: "maintenance_mode", Value: "yes", Type: models.SettingTypeBoolean},
		{Group: "jobs", Key: "retired_key", Value: "whatever", Type: models.SettingTypeString},
		{Group: "legacy", Key: "anything", Value: "x", Type: models.SettingTypeString},
	}}
	svc := NewSettingsService(repo, nil, nil, nil, nil, 0)

	jobs, err := svc.GetGroup(context.Background(), "jobs")
	require.NoError(t, err)
	assert.Equal(t, 45, jobs.Values["default_expiry_days"])
	// Rows outside the default key set are inert.
	assert.NotContains(t, jobs.Values, "retired_key")

	general, err := svc.GetGroup(context.Background(), "general")
	require.NoError(t, err)
	assert.Equal(t, true, general.Values["maintenance_mode"])
}

func TestSettingsGetGroupUnparseableOverrideKeepsDefault(t *testing.T) {
	repo := &fakeSettingRepo{rows: []models.Setting{
		{Group: "jobs", Key: "default_expiry_days", Value: "soon", Type: models.SettingTypeInteger},
	}}
	svc := NewSettingsService(repo, nil, nil, nil, nil, 0)

	jobs, err := svc.GetGroup(context.Background(), "jobs")
	require.NoError(t, err)
	assert.Equal(t, 30, jobs.Values["default_expiry_days"])
}

func TestSettingsGetGroupStoreDownServesDefaults(t *testing.T) {
	repo := &fakeSettingRepo{listErr: errors.New("connection refused")}
	svc := NewSettingsService(repo, nil, nil, nil, nil, 0)

	group, err := svc.GetGroup(context.Background(), "general")
	require.NoError(t, err)
	assert.Equal(t, "WorkHive", group.Values["site_name"])
}

func TestSettingsGetGroupPanicsOnUnknownGroup(t *testing.T) {
	svc := NewSettingsService(&fakeSettingRepo{}, nil, nil, nil, nil, 0)
	assert.Panics(t, func() {
		_, _ = svc.GetGroup(context.Background(), "smtp")
	})
}

func TestSettingsUpdatePersistsAndAudits(t *testing.T) {
	repo := &fakeSettingRepo{}
	audit := &fakeAudit{}
	svc := NewSettingsService(repo, nil, audit, nil, nil, 0)

	actor := &models.JWTClaims{UserID: "admin-1"}
	group, err := svc.Update(context.Background(), "jobs", dto.UpdateSettingsRequest{
		Values: map[string]interface{}{
			"default_expiry_days": 60,
			"auto_approve":        true,
			"made_up_key":         "ignored",
		},
	}, actor)
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.Len(t, repo.upserted[0], 2)
	for _, row := range repo.upserted[0] {
		assert.Equal(t, "jobs", row.Group)
		require.NotNil(t, row.UpdatedBy)
		assert.Equal(t, "admin-1", *row.UpdatedBy)
	}

	assert.Equal(t, 60, group.Values["default_expiry_days"])
	assert.Equal(t, true, group.Values["auto_approve"])
	assert.NotContains(t, group.Values, "made_up_key")

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionSettingsUpdate, audit.entries[0].Action)
}

func TestSettingsUpdateUnknownGroupIsValidationError(t *testing.T) {
	svc := NewSettingsService(&fakeSettingRepo{}, nil, nil, nil, nil, 0)

	_, err := svc.Update(context.Background(), "smtp", dto.UpdateSettingsRequest{
		Values: map[string]interface{}{"host": "mail.example"},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingsUpdateTypeMismatchRejected(t *testing.T) {
	svc := NewSettingsService(&fakeSettingRepo{}, nil, nil, nil, nil, 0)

	_, err := svc.Update(context.Background(), "jobs", dto.UpdateSettingsRequest{
		Values: map[string]interface{}{"default_expiry_days": "eventually"},
	}, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "default_expiry_days", appErr.Field)
}

func TestSettingsUpdateMasksPersistenceFailure(t *testing.T) {
	repo := &fakeSettingRepo{upsertErr: errors.New("read-only replica")}
	audit := &fakeAudit{}
	svc := NewSettingsService(repo, nil, audit, nil, nil, 0)

	group, err := svc.Update(context.Background(), "jobs", dto.UpdateSettingsRequest{
		Values: map[string]interface{}{"default_expiry_days": 90},
	}, nil)
	require.NoError(t, err)

	// The caller still sees the attempted new state.
	assert.Equal(t, 90, group.Values["default_expiry_days"])
	// No audit entry for a write that did not land.
	assert.Empty(t, audit.entries)
}

func TestKnownSettingsGroup(t *testing.T) {
	assert.True(t, KnownSettingsGroup("general"))
	assert.True(t, KnownSettingsGroup("reviews"))
	assert.False(t, KnownSettingsGroup("payments"))
}
