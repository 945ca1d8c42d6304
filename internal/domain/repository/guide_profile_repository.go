package repository

import (
	"neptrip-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuideProfileRepository interface {
	Create(db *gorm.DB, profile *entity.GuideProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.GuideProfile, error)
	Update(db *gorm.DB, profile *entity.GuideProfile) error
	// IncrementTrekCount bumps the counter with a SQL expression so that
	// concurrent completions of different bookings never lose an update.
	IncrementTrekCount(db *gorm.DB, userID uuid.UUID) error
	Delete(db *gorm.DB, userID uuid.UUID) error
}
