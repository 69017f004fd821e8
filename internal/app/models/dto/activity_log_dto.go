package dto

import "github.com/yigit/sims/internal/app/models"

// ActivityLogListResponse is one page of the audit trail.
type ActivityLogListResponse struct {
	Logs       []*models.ActivityLog `json:"logs"`
	Pagination PaginationInfo        `json:"pagination"`
}
