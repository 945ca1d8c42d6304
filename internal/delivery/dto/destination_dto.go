package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDestinationRequest struct {
	Name            string   `json:"name" validate:"required"`
	Location        string   `json:"location" validate:"required"`
	Altitude        float64  `json:"altitude" validate:"required,gte=0"`
	Rating          int      `json:"rating" validate:"required,min=1,max=5"`
	Review          string   `json:"review" validate:"required"`
	Distance        float64  `json:"distance_from_user" validate:"required,gte=0"`
	TimeToComplete  string   `json:"time_to_complete" validate:"required"`
	DifficultyLevel string   `json:"difficulty_level" validate:"required,oneof=Easy Moderate Hard"`
	EcoCulturalInfo string   `json:"eco_cultural_info" validate:"required"`
	GearChecklist   []string `json:"gear_checklist" validate:"required,min=1"`
	Images          []string `json:"images" validate:"omitempty,dive,url"`
}

// Response DTOs

type DestinationResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Altitude        float64   `json:"altitude"`
	Rating          int       `json:"rating"`
	Review          string    `json:"review"`
	Distance        float64   `json:"distance_from_user"`
	TimeToComplete  string    `json:"time_to_complete"`
	DifficultyLevel string    `json:"difficulty_level"`
	EcoCulturalInfo string    `json:"eco_cultural_info"`
	GearChecklist   []string  `json:"gear_checklist"`
	Images          []string  `json:"images,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DestinationListResponse struct {
	Destinations []DestinationResponse `json:"destinations"`
	Total        int                   `json:"total"`
}
