package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateGuideRequest struct {
	FullName   string `json:"fullname" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Experience string `json:"experience" validate:"omitempty"`
	Languages  string `json:"languages" validate:"omitempty"`
}

type UpdateGuideProfileRequest struct {
	Experience string `json:"experience" validate:"omitempty"`
	Languages  string `json:"languages" validate:"omitempty"`
	QRImageURL string `json:"qr_image_url" validate:"omitempty,url"`
}

// Response DTOs

type GuideProfileResponse struct {
	Experience string `json:"experience,omitempty"`
	Languages  string `json:"languages,omitempty"`
	TrekCount  int    `json:"trek_count"`
	QRImageURL string `json:"qr_image_url,omitempty"`
}

// GuideResponse is the directory view of a guide: profile plus the derived
// rating projection computed from rated bookings.
type GuideResponse struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Avatar        string    `json:"avatar,omitempty"`
	Experience    string    `json:"experience,omitempty"`
	Languages     string    `json:"languages,omitempty"`
	TrekCount     int       `json:"trek_count"`
	QRImageURL    string    `json:"qr_image_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type GuideListResponse struct {
	Guides []GuideResponse `json:"guides"`
	Total  int             `json:"total"`
}
