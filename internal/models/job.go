package models

import "time"

// JobStatus enumerates the publication states of a job posting.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "DRAFT"
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

// Job represents a job posting stored in the jobs table.
type Job struct {
	ID        string     `db:"id" json:"id"`
	CompanyID string     `db:"company_id" json:"company_id"`
	Title     string     `db:"title" json:"title"`
	Slug      string     `db:"slug" json:"slug"`
	Status    JobStatus  `db:"status" json:"status"`
	Category  string     `db:"category" json:"category"`
	Location  string     `db:"location" json:"location"`
	Featured  bool       `db:"featured" json:"featured"`
	SalaryMin *int       `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax *int       `db:"salary_max" json:"salary_max,omitempty"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
