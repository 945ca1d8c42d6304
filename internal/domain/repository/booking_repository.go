package repository

import (
	"neptrip-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingSort keys for listing a guide's bookings
const (
	BookingSortNewest = "newest"
	BookingSortOldest = "oldest"
	BookingSortName   = "name"
)

// BookingFilter is a domain-level filter for querying a guide's bookings.
// Used by repository layer to avoid coupling with delivery DTOs.
type BookingFilter struct {
	Status entity.BookingStatus // optional exact status match
	Query  string               // case-insensitive substring over name/email/destination/date
	Sort   string               // newest (default), oldest, name
}

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Booking, error)
	FindLatestByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Booking, error)
	FindActiveByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Booking, error)
	FindActiveByGuideAndDate(db *gorm.DB, guideID uuid.UUID, trekDate string) (*entity.Booking, error)
	FindPendingByGuideID(db *gorm.DB, guideID uuid.UUID) ([]entity.Booking, error)
	Search(db *gorm.DB, guideID uuid.UUID, filter BookingFilter) ([]entity.Booking, error)

	// UpdateStatus flips status only along the edge guarded by fromStatus.
	// Returns affected rows: 1 = success, 0 = booking was not in fromStatus.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error)
	// Complete atomically resolves an accepted booking, stamping completed_at.
	Complete(db *gorm.DB, id uuid.UUID) (int64, error)
	UpdatePayment(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error

	ActiveGuideIDsOnDate(db *gorm.DB, trekDate string) ([]uuid.UUID, error)
	BookedDates(db *gorm.DB, guideID *uuid.UUID) ([]string, error)
	// DeclineActiveByGuideID force-declines every active booking of a guide;
	// used when an admin removes the guide account.
	DeclineActiveByGuideID(db *gorm.DB, guideID uuid.UUID) (int64, error)
	RatingSummary(db *gorm.DB, guideID uuid.UUID) (avg float64, count int64, err error)
}
