package converter

import (
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/domain/entity"
)

// DestinationToResponse converts a Destination entity to its DTO
func DestinationToResponse(destination *entity.Destination) *dto.DestinationResponse {
	if destination == nil {
		return nil
	}

	return &dto.DestinationResponse{
		ID:              destination.ID,
		Name:            destination.Name,
		Location:        destination.Location,
		Altitude:        destination.Altitude,
		Rating:          destination.Rating,
		Review:          destination.Review,
		Distance:        destination.Distance,
		TimeToComplete:  destination.TimeToComplete,
		DifficultyLevel: string(destination.DifficultyLevel),
		EcoCulturalInfo: destination.EcoCulturalInfo,
		GearChecklist:   destination.GearChecklist,
		Images:          destination.Images,
		CreatedAt:       destination.CreatedAt,
		UpdatedAt:       destination.UpdatedAt,
	}
}

// DestinationsToResponses converts a slice of Destination entities to DTOs
func DestinationsToResponses(destinations []entity.Destination) []dto.DestinationResponse {
	responses := make([]dto.DestinationResponse, len(destinations))
	for i, destination := range destinations {
		resp := DestinationToResponse(&destination)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
