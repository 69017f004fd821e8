package models

import "time"

// ActivityLog is an append-only audit record. UserID is nil for system actions
// and after the acting user has been deleted; Username is kept either way.
type ActivityLog struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"userId,omitempty" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	Action      string    `json:"action" db:"action" example:"Create"`
	EntityType  string    `json:"entityType" db:"entity_type" example:"Student"`
	EntityID    *int64    `json:"entityId,omitempty" db:"entity_id"`
	Description *string   `json:"description,omitempty" db:"description"`
	IPAddress   *string   `json:"ipAddress,omitempty" db:"ip_address"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
