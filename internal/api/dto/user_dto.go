package dto

import (
	"time"

	"github.com/unifix/complaint-service/internal/domain"
)

// RegisterRequest is the student signup payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the login payload for every role.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued session token.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// AddUserRequest is the admin account-creation payload.
type AddUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=Student Warden Technician Admin"`
}

// UpdateProfileRequest edits the optional profile fields. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	RegisterNo *string `json:"register_no" validate:"omitempty,max=50"`
	Address    *string `json:"address" validate:"omitempty,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
}

// UserResponse renders an account. The password hash never leaves the server.
type UserResponse struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	CreatedAt  time.Time   `json:"created_at"`
	RegisterNo *string     `json:"register_no,omitempty"`
	Address    *string     `json:"address,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
}

// NewUserResponse maps the domain model.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
		RegisterNo: user.RegisterNo,
		Address:    user.Address,
		Phone:      user.Phone,
	}
}
