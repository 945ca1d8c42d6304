package converter

import (
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Includes the GuideProfile if it is loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		Avatar:    user.Avatar,
		Phone:     user.Phone,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.GuideProfile != nil {
		response.GuideProfile = &dto.GuideProfileResponse{
			Experience: user.GuideProfile.Experience,
			Languages:  user.GuideProfile.Languages,
			TrekCount:  user.GuideProfile.TrekCount,
			QRImageURL: user.GuideProfile.QRImageURL,
		}
	}

	return response
}

// UsersToResponses converts a slice of User entities to UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		resp := UserToResponse(&user)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
