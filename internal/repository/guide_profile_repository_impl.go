package repository

import (
	"errors"

	"neptrip-backend/internal/domain/entity"
	domainRepo "neptrip-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type guideProfileRepository struct{}

func NewGuideProfileRepository() domainRepo.GuideProfileRepository {
	return &guideProfileRepository{}
}

func (r *guideProfileRepository) Create(db *gorm.DB, profile *entity.GuideProfile) error {
	return db.Create(profile).Error
}

func (r *guideProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.GuideProfile, error) {
	var profile entity.GuideProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *guideProfileRepository) Update(db *gorm.DB, profile *entity.GuideProfile) error {
	return db.Save(profile).Error
}

// IncrementTrekCount uses a SQL expression, not read-modify-write, so
// concurrent completions for the same guide never lose an update.
func (r *guideProfileRepository) IncrementTrekCount(db *gorm.DB, userID uuid.UUID) error {
	return db.Model(&entity.GuideProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("trek_count", gorm.Expr("trek_count + ?", 1)).Error
}

func (r *guideProfileRepository) Delete(db *gorm.DB, userID uuid.UUID) error {
	return db.Delete(&entity.GuideProfile{}, "user_id = ?", userID).Error
}
