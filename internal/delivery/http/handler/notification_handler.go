package handler

import (
	"net/http"

	"neptrip-backend/internal/converter"
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/delivery/http/middleware"
	"neptrip-backend/internal/service"
	"neptrip-backend/pkg/response"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetMyNotifications lists the stored events addressed to the caller.
func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	notifications, err := h.notificationService.ListForRecipient(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Total:         len(notifications),
	})
}
