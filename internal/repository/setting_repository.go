package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/workhive/jobportal-api/internal/models"
)

// SettingRepository persists setting overrides. It is the sole reader and
// writer of the settings table; rows are upserted by (group, key) and never
// physically deleted.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository constructs the repository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// ListAll returns every persisted override ordered by group and key.
func (r *SettingRepository) ListAll(ctx context.Context) ([]models.Setting, error) {
	const query = `SELECT group_name, key, value, type, updated_by, updated_at
FROM settings ORDER BY group_name ASC, key ASC`
	var settings []models.Setting
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// Upsert inserts or updates a single override.
func (r *SettingRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	const query = `INSERT INTO settings (group_name, key, value, type, updated_by, updated_at)
VALUES (:group_name, :key, :value, :type, :updated_by, :updated_at)
ON CONFLICT (group_name, key)
DO UPDATE SET value = EXCLUDED.value, type = EXCLUDED.type,
              updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	setting.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return fmt.Errorf("upsert setting %s.%s: %w", setting.Group, setting.Key, err)
	}
	return nil
}

// BulkUpsert performs upserts within a transaction. A single override needs
// no transaction and goes through Upsert directly.
func (r *SettingRepository) BulkUpsert(ctx context.Context, settings []models.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	if len(settings) == 1 {
		return r.Upsert(ctx, &settings[0])
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	const query = `INSERT INTO settings (group_name, key, value, type, updated_by, updated_at)
VALUES (:group_name, :key, :value, :type, :updated_by, :updated_at)
ON CONFLICT (group_name, key)
DO UPDATE SET value = EXCLUDED.value, type = EXCLUDED.type,
              updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	for i := range settings {
		settings[i].UpdatedAt = time.Now().UTC()
		if _, err := tx.NamedExecContext(ctx, query, settings[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("bulk upsert setting: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings tx: %w", err)
	}
	return nil
}
