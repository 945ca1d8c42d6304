package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	FullName string `json:"fullname" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullname" validate:"omitempty,min=2"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Address  string `json:"address" validate:"omitempty"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResponse bundles the tokens with the signed-in account and the
// dashboard the client should route to for the account's role.
type LoginResponse struct {
	TokenResponse
	User        UserResponse `json:"user"`
	RedirectURL string       `json:"redirect_url"`
}

type UserResponse struct {
	ID           uuid.UUID             `json:"id"`
	Email        string                `json:"email"`
	FullName     string                `json:"full_name"`
	Role         string                `json:"role"`
	Avatar       string                `json:"avatar,omitempty"`
	Phone        string                `json:"phone,omitempty"`
	Address      string                `json:"address,omitempty"`
	GuideProfile *GuideProfileResponse `json:"guide_profile,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
