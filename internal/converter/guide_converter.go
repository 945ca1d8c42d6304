package converter

import (
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/domain/entity"
)

// GuideToResponse converts a guide account plus its derived rating
// projection into the directory view.
func GuideToResponse(user *entity.User, avgRating float64, reviewCount int64) *dto.GuideResponse {
	if user == nil {
		return nil
	}

	response := &dto.GuideResponse{
		ID:            user.ID,
		FullName:      user.FullName,
		Email:         user.Email,
		Avatar:        user.Avatar,
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
		CreatedAt:     user.CreatedAt,
	}

	if user.GuideProfile != nil {
		response.Experience = user.GuideProfile.Experience
		response.Languages = user.GuideProfile.Languages
		response.TrekCount = user.GuideProfile.TrekCount
		response.QRImageURL = user.GuideProfile.QRImageURL
	}

	return response
}
