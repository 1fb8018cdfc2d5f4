package dto

import "github.com/workhive/jobportal-api/internal/models"

// ListParams carries the sort/paginate inputs shared by every admin listing.
type ListParams struct {
	SortBy        string `form:"sort_by"`
	SortDirection string `form:"sort_direction"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// CompanyListRequest filters the companies listing.
type CompanyListRequest struct {
	ListParams
	Industry    string `form:"industry"`
	Verified    string `form:"verified"`
	Search      string `form:"search"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

// BlogPostListRequest filters the blog posts listing.
type BlogPostListRequest struct {
	ListParams
	Published   string `form:"published"`
	AuthorID    string `form:"author_id"`
	Search      string `form:"search"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

// ReviewListRequest filters the reviews listing.
type ReviewListRequest struct {
	ListParams
	CompanyID   string `form:"company_id"`
	Approved    string `form:"approved"`
	RatingFrom  string `form:"rating_from"`
	RatingTo    string `form:"rating_to"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

// SubscriberListRequest filters the newsletter subscribers listing.
type SubscriberListRequest struct {
	ListParams
	Verified    string `form:"verified"`
	Search      string `form:"search"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

// BlogPostItem is a blog post row decorated with its eager-loaded author.
type BlogPostItem struct {
	models.BlogPost
	AuthorName string `json:"author_name,omitempty"`
}

// ReviewItem is a review row decorated with its eager-loaded company.
type ReviewItem struct {
	models.Review
	CompanyName string `json:"company_name,omitempty"`
}

// ApproveReviewRequest flips a review's moderation flag.
type ApproveReviewRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// AuditLogListRequest filters the audit log listing.
type AuditLogListRequest struct {
	ListParams
	Action      string `form:"action"`
	Resource    string `form:"resource"`
	UserID      string `form:"user_id"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}
