package dto

import "github.com/workhive/jobportal-api/internal/query"

// ReportRequest tunes a report window and optional dimension.
type ReportRequest struct {
	WindowDays int    `form:"window_days"`
	Dimension  string `form:"dimension"`
	Status     string `form:"status"`
	CompanyID  string `form:"company_id"`
}

// JobsReport summarises job-posting activity over a rolling window.
type JobsReport struct {
	WindowDays int                `json:"window_days"`
	Total      int                `json:"total"`
	InWindow   int                `json:"in_window"`
	GrowthRate float64            `json:"growth_rate"`
	Series     []query.TimeBucket `json:"series"`
}

// ApplicationsReport summarises application activity over a rolling window.
type ApplicationsReport struct {
	WindowDays      int                `json:"window_days"`
	Total           int                `json:"total"`
	InWindow        int                `json:"in_window"`
	GrowthRate      float64            `json:"growth_rate"`
	ConversionRate  float64            `json:"conversion_rate"`
	RejectionRate   float64            `json:"rejection_rate"`
	AvgDecisionDays float64            `json:"avg_decision_days"`
	Series          []query.TimeBucket `json:"series"`
}
