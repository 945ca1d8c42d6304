package repository

import (
	"neptrip-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DestinationRepository interface {
	Create(db *gorm.DB, destination *entity.Destination) error
	FindAll(db *gorm.DB) ([]entity.Destination, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Destination, error)
}
