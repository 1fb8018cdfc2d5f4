package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/workhive/jobportal-api/internal/models"
)

// ApplicationRepository manages persistence for job applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// FindByID fetches an application by ID.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	const query = `SELECT id, job_id, user_id, status, resume_url, decided_at, created_at, updated_at
FROM applications WHERE id = $1`
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus transitions an application's review status. Terminal
// transitions stamp decided_at so time-to-decision can be reported.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	now := time.Now().UTC()
	if status == models.ApplicationStatusAccepted || status == models.ApplicationStatusRejected {
		const query = `UPDATE applications SET status = $2, decided_at = $3, updated_at = $3 WHERE id = $1`
		if _, err := r.db.ExecContext(ctx, query, id, status, now); err != nil {
			return fmt.Errorf("decide application: %w", err)
		}
		return nil
	}
	const query = `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, now); err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	return nil
}

// DecisionWindows returns the (created_at, decided_at) pairs of applications
// decided since the given instant.
func (r *ApplicationRepository) DecisionWindows(ctx context.Context, since time.Time) ([]models.DecisionWindow, error) {
	const query = `SELECT created_at, decided_at FROM applications
WHERE decided_at IS NOT NULL AND decided_at >= $1`
	var windows []models.DecisionWindow
	if err := r.db.SelectContext(ctx, &windows, query, since); err != nil {
		return nil, fmt.Errorf("list decision windows: %w", err)
	}
	return windows, nil
}
