package dto

import "github.com/workhive/jobportal-api/internal/models"

// JobListRequest filters the jobs listing.
type JobListRequest struct {
	ListParams
	Status      string `form:"status"`
	CompanyID   string `form:"company_id"`
	Category    string `form:"category"`
	Location    string `form:"location"`
	Search      string `form:"search"`
	Featured    string `form:"featured"`
	SalaryFrom  string `form:"salary_from"`
	SalaryTo    string `form:"salary_to"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

// JobItem is a job row decorated with its eager-loaded company.
type JobItem struct {
	models.Job
	CompanyName     string `json:"company_name,omitempty"`
	CompanyIndustry string `json:"company_industry,omitempty"`
}

// CreateJobRequest creates a job posting.
type CreateJobRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid4"`
	Title     string `json:"title" validate:"required,min=3,max=200"`
	Slug      string `json:"slug" validate:"omitempty,max=200"`
	Category  string `json:"category" validate:"required"`
	Location  string `json:"location" validate:"required"`
	Featured  bool   `json:"featured"`
	SalaryMin *int   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax *int   `json:"salary_max" validate:"omitempty,gte=0"`
}

// UpdateJobStatusRequest transitions a job's publication status.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT OPEN CLOSED"`
}
