package service

import (
	"context"

	"neptrip-backend/internal/domain/entity"
	"neptrip-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationService is the fire-and-forget event sink. Callers hand it a
// human-readable message for a recipient; a failed write is logged and
// dropped, it never fails the booking operation that produced it.
type NotificationService struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

// Notify records an event for a recipient. No delivery guarantee.
func (s *NotificationService) Notify(ctx context.Context, recipientID uuid.UUID, event, message string, metadata entity.JSON) {
	notification := &entity.Notification{
		RecipientID: recipientID,
		Message:     message,
		Metadata:    metadata,
	}
	if notification.Metadata == nil {
		notification.Metadata = entity.JSON{}
	}
	notification.Metadata["event"] = event

	if err := s.notificationRepo.Create(s.db.WithContext(ctx), notification); err != nil {
		s.log.Warnf("Failed to record notification %s for %s (dropped): %+v", event, recipientID, err)
	}
}

// ListForRecipient returns the stored events for one account, newest first.
func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]entity.Notification, error) {
	return s.notificationRepo.FindByRecipientID(s.db.WithContext(ctx), recipientID)
}
