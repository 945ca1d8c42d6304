package repository

import (
	"errors"
	"time"

	"neptrip-backend/internal/domain/entity"
	domainRepo "neptrip-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Guide").Preload("User").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Guide").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindLatestByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Guide").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindActiveByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("user_id = ? AND status IN ?", userID, entity.ActiveStatuses).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindActiveByGuideAndDate(db *gorm.DB, guideID uuid.UUID, trekDate string) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("guide_id = ? AND trek_date = ? AND status IN ?", guideID, trekDate, entity.ActiveStatuses).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindPendingByGuideID(db *gorm.DB, guideID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("User").
		Where("guide_id = ? AND status = ?", guideID, entity.BookingStatusPending).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Search(db *gorm.DB, guideID uuid.UUID, filter domainRepo.BookingFilter) ([]entity.Booking, error) {
	query := db.Preload("User").Where("guide_id = ?", guideID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(
			"LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(destination) LIKE LOWER(?) OR trek_date LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	switch filter.Sort {
	case domainRepo.BookingSortOldest:
		query = query.Order("created_at ASC")
	case domainRepo.BookingSortName:
		query = query.Order("full_name ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var bookings []entity.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus flips status atomically guarded by the expected current
// status. Returns affected rows: 1 = success, 0 = booking already left the
// from status (prevents double-resolve races).
func (r *bookingRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// Complete resolves an accepted booking and stamps completed_at in the same
// single-row update, so completed_at is set iff the status flip happened.
func (r *bookingRepository) Complete(db *gorm.DB, id uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, entity.BookingStatusAccepted).
		Updates(map[string]interface{}{
			"status":       entity.BookingStatusCompleted,
			"completed_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) UpdatePayment(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return db.Model(&entity.Booking{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *bookingRepository) ActiveGuideIDsOnDate(db *gorm.DB, trekDate string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&entity.Booking{}).
		Where("trek_date = ? AND status IN ?", trekDate, entity.ActiveStatuses).
		Distinct().
		Pluck("guide_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *bookingRepository) BookedDates(db *gorm.DB, guideID *uuid.UUID) ([]string, error) {
	query := db.Model(&entity.Booking{}).
		Where("status IN ?", entity.ActiveStatuses)
	if guideID != nil {
		query = query.Where("guide_id = ?", *guideID)
	}

	var dates []string
	err := query.Distinct().Order("trek_date ASC").Pluck("trek_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *bookingRepository) DeclineActiveByGuideID(db *gorm.DB, guideID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("guide_id = ? AND status IN ?", guideID, entity.ActiveStatuses).
		Update("status", entity.BookingStatusDeclined)
	return result.RowsAffected, result.Error
}

// RatingSummary is the read-time projection behind a guide's average rating;
// nothing is stored redundantly on the profile.
func (r *bookingRepository) RatingSummary(db *gorm.DB, guideID uuid.UUID) (float64, int64, error) {
	type row struct {
		Avg   *float64
		Count int64
	}
	var res row
	err := db.Model(&entity.Booking{}).
		Select("AVG(rating) AS avg, COUNT(rating) AS count").
		Where("guide_id = ? AND rating IS NOT NULL", guideID).
		Scan(&res).Error
	if err != nil {
		return 0, 0, err
	}
	if res.Avg == nil {
		return 0, res.Count, nil
	}
	return *res.Avg, res.Count, nil
}
