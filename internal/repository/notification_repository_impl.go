package repository

import (
	"neptrip-backend/internal/domain/entity"
	domainRepo "neptrip-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByRecipientID(db *gorm.DB, recipientID uuid.UUID) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
