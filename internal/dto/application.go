package dto

import "github.com/workhive/jobportal-api/internal/models"

// ApplicationListRequest filters the applications listing.
type ApplicationListRequest struct {
	ListParams
	Status      string `form:"status"`
	JobID       string `form:"job_id"`
	UserID      string `form:"user_id"`
	CompanyID   string `form:"company_id"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

// ApplicationItem is an application row decorated with its eager-loaded job
// and applicant.
type ApplicationItem struct {
	models.Application
	JobTitle       string `json:"job_title,omitempty"`
	ApplicantName  string `json:"applicant_name,omitempty"`
	ApplicantEmail string `json:"applicant_email,omitempty"`
}

// DecideApplicationRequest transitions an application's review status.
type DecideApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING REVIEWED ACCEPTED REJECTED"`
}
