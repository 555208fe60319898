package dto

import (
	"strings"
	"time"

	"github.com/cookfarm/pantry-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// Normalize trims the display name before validation.
func (r *UserRegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account. It never carries password material.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserAuthResponse is the body of successful register and login calls.
type UserAuthResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	User    UserResponse  `json:"user"`
	Auth    *AuthResponse `json:"auth,omitempty"`
}

// UserFailureResponse is the body of failed register and login calls.
type UserFailureResponse struct {
	Status  string         `json:"status"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}
