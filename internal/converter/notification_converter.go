package converter

import (
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/domain/entity"
)

// NotificationsToResponses converts stored events to their DTO view
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Metadata:  n.Metadata,
			CreatedAt: n.CreatedAt,
		}
	}
	return responses
}
