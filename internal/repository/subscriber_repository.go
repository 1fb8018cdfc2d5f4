package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/workhive/jobportal-api/internal/models"
)

// SubscriberRepository manages persistence for newsletter subscriptions.
type SubscriberRepository struct {
	db *sqlx.DB
}

// NewSubscriberRepository constructs a SubscriberRepository.
func NewSubscriberRepository(db *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// FindByID fetches a subscriber by ID.
func (r *SubscriberRepository) FindByID(ctx context.Context, id string) (*models.Subscriber, error) {
	const query = `SELECT id, email, verified, created_at FROM subscribers WHERE id = $1`
	var sub models.Subscriber
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Delete removes a subscription.
func (r *SubscriberRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM subscribers WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}
