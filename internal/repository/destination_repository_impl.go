package repository

import (
	"errors"

	"neptrip-backend/internal/domain/entity"
	domainRepo "neptrip-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type destinationRepository struct{}

func NewDestinationRepository() domainRepo.DestinationRepository {
	return &destinationRepository{}
}

func (r *destinationRepository) Create(db *gorm.DB, destination *entity.Destination) error {
	return db.Create(destination).Error
}

func (r *destinationRepository) FindAll(db *gorm.DB) ([]entity.Destination, error) {
	var destinations []entity.Destination
	err := db.Order("created_at DESC").Find(&destinations).Error
	if err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *destinationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Destination, error) {
	var destination entity.Destination
	err := db.Where("id = ?", id).First(&destination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &destination, nil
}
