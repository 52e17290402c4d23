package dto

import "github.com/unifix/complaint-service/internal/domain"

// StatisticsResponse is the admin dashboard snapshot.
type StatisticsResponse struct {
	Total              int                              `json:"total"`
	Pending            int                              `json:"pending"`
	ResolvedToday      int                              `json:"resolved_today"`
	AvgResolutionHours *float64                         `json:"avg_resolution_hours"`
	ByCategory         map[domain.ComplaintCategory]int `json:"by_category"`
	ByStatus           map[domain.ComplaintStatus]int   `json:"by_status"`
}

// UserCountsResponse is the per-student dashboard counter set.
type UserCountsResponse struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Total      int `json:"total"`
}
