package dto

import "time"

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType" example:"Bearer"`
	ExpiresIn   int       `json:"expiresIn" example:"86400"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UpdateProfileRequest carries the contact fields a user may edit on their own account.
type UpdateProfileRequest struct {
	Email string  `json:"email" binding:"omitempty,email" example:"jdoe@school.edu"`
	Phone *string `json:"phone,omitempty" binding:"omitempty,max=20"`
}
