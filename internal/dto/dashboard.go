package dto

import "github.com/workhive/jobportal-api/internal/query"

// DashboardTotals carries headline collection counts.
type DashboardTotals struct {
	Jobs         int `json:"jobs"`
	OpenJobs     int `json:"open_jobs"`
	Companies    int `json:"companies"`
	Users        int `json:"users"`
	Applications int `json:"applications"`
}

// DashboardGrowth carries period-over-period growth percentages.
type DashboardGrowth struct {
	Jobs  float64 `json:"jobs"`
	Users float64 `json:"users"`
}

// DashboardApplications carries application funnel metrics.
type DashboardApplications struct {
	ConversionRate  float64 `json:"conversion_rate"`
	RejectionRate   float64 `json:"rejection_rate"`
	AvgDecisionDays float64 `json:"avg_decision_days"`
}

// DashboardResponse is the composed admin dashboard payload. The daily series
// are sparse: days without activity carry no bucket.
type DashboardResponse struct {
	WindowDays    int                   `json:"window_days"`
	Totals        DashboardTotals       `json:"totals"`
	Growth        DashboardGrowth       `json:"growth"`
	Applications  DashboardApplications `json:"applications"`
	Registrations []query.TimeBucket    `json:"registrations"`
	JobPostings   []query.TimeBucket    `json:"job_postings"`
}
