package dto

import (
	"time"

	"github.com/yigit/sims/internal/app/models"
)

type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50" example:"registrar"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Role     string  `json:"role" binding:"required,oneof=Admin Student Falculty" example:"Admin"`
	Status   string  `json:"status" binding:"omitempty,oneof=Active Inactive" example:"Active"`
}

// UpdateUserRequest replaces every field. An empty password keeps the current one.
type UpdateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Password string  `json:"password" binding:"omitempty,min=6"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Role     string  `json:"role" binding:"required,oneof=Admin Student Falculty"`
	Status   string  `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UserResponse never carries the password.
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Username  string    `json:"username" example:"jdoe"`
	Email     string    `json:"email,omitempty" example:"jdoe@school.edu"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role" example:"Student"`
	Status    string    `json:"status" example:"Active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
