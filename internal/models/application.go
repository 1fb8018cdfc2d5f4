package models

import "time"

// ApplicationStatus enumerates the review states of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusReviewed ApplicationStatus = "REVIEWED"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// Application represents a candidate's application to a job.
type Application struct {
	ID        string            `db:"id" json:"id"`
	JobID     string            `db:"job_id" json:"job_id"`
	UserID    string            `db:"user_id" json:"user_id"`
	Status    ApplicationStatus `db:"status" json:"status"`
	ResumeURL *string           `db:"resume_url" json:"resume_url,omitempty"`
	DecidedAt *time.Time        `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt time.Time         `db:"updated_at" json:"updated_at"`
}

// DecisionWindow holds the submission and decision timestamps of a decided
// application, used for average time-to-decision reporting.
type DecisionWindow struct {
	CreatedAt time.Time `db:"created_at"`
	DecidedAt time.Time `db:"decided_at"`
}
