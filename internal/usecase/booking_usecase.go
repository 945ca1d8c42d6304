package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"neptrip-backend/internal/converter"
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/delivery/http/middleware"
	"neptrip-backend/internal/domain/entity"
	"neptrip-backend/internal/domain/repository"
	"neptrip-backend/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrGuideNotFound      = errors.New("guide not found")
	ErrOngoingTrekExists  = errors.New("you already have an ongoing trek")
	ErrGuideUnavailable   = errors.New("guide is unavailable on this date")
	ErrBookingNotOwned    = errors.New("booking does not belong to you")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrBookingNotComplete = errors.New("booking is not completed yet")
	ErrIdentityMissing    = errors.New("user not found in context")
)

// Names of the partial unique indexes that back the two uniqueness
// constraints at the storage layer (see migrations).
const (
	idxActivePerUser         = "uniq_active_booking_per_user"
	idxActivePerGuideAndDate = "uniq_active_booking_per_guide_date"
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetMyBookings(ctx context.Context) (*dto.BookingListResponse, error)
	GetBookingStatus(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	GetLatestBooking(ctx context.Context) (*dto.BookingResponse, error)
	ConfirmUserPayment(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	RateBooking(ctx context.Context, bookingID uuid.UUID, req *dto.RateBookingRequest) (*dto.BookingResponse, error)
	AvailableGuides(ctx context.Context, trekDate string) (*dto.GuideListResponse, error)
	BookedDates(ctx context.Context, guideID *uuid.UUID) (*dto.BookedDatesResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	profileRepo  repository.GuideProfileRepository
	notification *service.NotificationService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	profileRepo repository.GuideProfileRepository,
	notification *service.NotificationService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		notification: notification,
	}
}

// CreateBooking opens a new trek request as pending.
//
// Precondition order matters, first failure wins:
// 1. required fields and payment method (delivery-layer validator)
// 2. trek date parses as a calendar date
// 3. referenced guide exists with the guide role
// 4. requester holds no active booking
// 5. guide holds no active booking on that date
//
// The two existence checks are backed by partial unique indexes, so two
// requests racing past the checks cannot both insert; the loser gets the
// same conflict error the check would have produced.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrInvalidDateFormat
	}

	guide, err := u.resolveGuide(ctx, req.GuideID)
	if err != nil {
		return nil, err
	}

	// One active trek per user
	existing, err := u.bookingRepo.FindActiveByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to check active booking for user %s: %+v", userID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrOngoingTrekExists
	}

	// No double-booking a guide on a date
	conflict, err := u.bookingRepo.FindActiveByGuideAndDate(u.db.WithContext(ctx), guide.ID, req.Date)
	if err != nil {
		u.log.Warnf("Failed to check guide availability for %s on %s: %+v", guide.ID, req.Date, err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrGuideUnavailable
	}

	booking := &entity.Booking{
		UserID:        userID,
		GuideID:       guide.ID,
		FullName:      req.FullName,
		Email:         req.Email,
		Address:       req.Address,
		Phone:         req.Phone,
		PeopleCount:   req.PeopleCount,
		Destination:   req.Destination,
		TrekDate:      req.Date,
		Status:        entity.BookingStatusPending,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		PaymentStatus: entity.PaymentStatusUnpaid,
		PaymentAmount: decimal.Zero,
		SchemaVersion: entity.BookingSchemaVersion,
	}

	if err := u.bookingRepo.Create(u.db.WithContext(ctx), booking); err != nil {
		// Storage-level backstop for the check-then-insert race
		if isDuplicateKeyError(err, idxActivePerUser) {
			return nil, ErrOngoingTrekExists
		}
		if isDuplicateKeyError(err, idxActivePerGuideAndDate) {
			return nil, ErrGuideUnavailable
		}
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	u.notification.Notify(ctx, guide.ID, entity.NotifyBookingRequested,
		fmt.Sprintf("%s requested a trek to %s on %s for %d people", req.FullName, req.Destination, req.Date, req.PeopleCount),
		entity.JSON{"booking_id": booking.ID.String()})

	full, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), booking.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", booking.ID, err)
		return converter.BookingToResponse(booking), nil
	}

	u.log.Infof("Booking created: id=%s, guide=%s, date=%s", booking.ID, guide.ID, req.Date)
	return converter.BookingToResponse(full), nil
}

// resolveGuide finds the chosen guide, or the sole guide on record when the
// request omits one (degenerate single-guide deployments).
func (u *bookingUsecase) resolveGuide(ctx context.Context, guideID string) (*entity.User, error) {
	if guideID == "" {
		guide, err := u.userRepo.FindFirstByRole(u.db.WithContext(ctx), entity.RoleGuide)
		if err != nil {
			return nil, err
		}
		if guide == nil {
			return nil, ErrGuideNotFound
		}
		return guide, nil
	}

	id, err := uuid.Parse(guideID)
	if err != nil {
		return nil, ErrGuideNotFound
	}
	guide, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if guide == nil || !guide.IsGuide() {
		return nil, ErrGuideNotFound
	}
	return guide, nil
}

// GetMyBookings returns all bookings for the logged-in requester
func (u *bookingUsecase) GetMyBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	bookings, err := u.bookingRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) GetBookingStatus(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotOwned
	}

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetLatestBooking(ctx context.Context) (*dto.BookingResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	booking, err := u.bookingRepo.FindLatestByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find latest booking for user %s: %+v", userID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	return converter.BookingToResponse(booking), nil
}

// ConfirmUserPayment flips the requester-side payment flag. The flag is
// monotone: confirming an already-confirmed booking is a no-op, not an
// error, and the flag never resets.
func (u *bookingUsecase) ConfirmUserPayment(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotOwned
	}

	if !booking.UserPaymentConfirmed {
		err := u.bookingRepo.UpdatePayment(u.db.WithContext(ctx), bookingID, map[string]interface{}{
			"user_payment_confirmed": true,
		})
		if err != nil {
			u.log.Warnf("Failed to confirm user payment for booking %s: %+v", bookingID, err)
			return nil, err
		}
		booking.UserPaymentConfirmed = true

		u.notification.Notify(ctx, booking.GuideID, entity.NotifyPaymentConfirmed,
			fmt.Sprintf("%s confirmed payment was sent for the trek on %s", booking.FullName, booking.TrekDate),
			entity.JSON{"booking_id": booking.ID.String()})
	}

	return converter.BookingToResponse(booking), nil
}

// RateBooking records the requester's rating of a completed trek. Ratings
// feed the guide's derived average; nothing is stored on the profile.
func (u *bookingUsecase) RateBooking(ctx context.Context, bookingID uuid.UUID, req *dto.RateBookingRequest) (*dto.BookingResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotOwned
	}
	if !booking.IsCompleted() {
		return nil, ErrBookingNotComplete
	}

	err = u.bookingRepo.UpdatePayment(u.db.WithContext(ctx), bookingID, map[string]interface{}{
		"rating": req.Rating,
		"review": req.Review,
	})
	if err != nil {
		u.log.Warnf("Failed to rate booking %s: %+v", bookingID, err)
		return nil, err
	}

	booking.Rating = &req.Rating
	booking.Review = req.Review
	return converter.BookingToResponse(booking), nil
}

// AvailableGuides returns guides holding no active booking on the date,
// computed as a set-difference. The result is advisory: creation re-checks
// availability before inserting.
func (u *bookingUsecase) AvailableGuides(ctx context.Context, trekDate string) (*dto.GuideListResponse, error) {
	if _, err := time.Parse("2006-01-02", trekDate); err != nil {
		return nil, ErrInvalidDateFormat
	}

	guides, err := u.userRepo.FindByRole(u.db.WithContext(ctx), entity.RoleGuide)
	if err != nil {
		u.log.Warnf("Failed to list guides: %+v", err)
		return nil, err
	}

	busyIDs, err := u.bookingRepo.ActiveGuideIDsOnDate(u.db.WithContext(ctx), trekDate)
	if err != nil {
		u.log.Warnf("Failed to find busy guides on %s: %+v", trekDate, err)
		return nil, err
	}
	busy := make(map[uuid.UUID]struct{}, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = struct{}{}
	}

	available := make([]dto.GuideResponse, 0, len(guides))
	for i := range guides {
		if _, taken := busy[guides[i].ID]; taken {
			continue
		}
		avg, count, err := u.bookingRepo.RatingSummary(u.db.WithContext(ctx), guides[i].ID)
		if err != nil {
			u.log.Warnf("Failed to compute rating for guide %s: %+v", guides[i].ID, err)
			return nil, err
		}
		available = append(available, *converter.GuideToResponse(&guides[i], avg, count))
	}

	return &dto.GuideListResponse{Guides: available, Total: len(available)}, nil
}

// BookedDates returns the set of dates already reserved, optionally scoped
// to one guide. Used client-side to disable calendar dates.
func (u *bookingUsecase) BookedDates(ctx context.Context, guideID *uuid.UUID) (*dto.BookedDatesResponse, error) {
	dates, err := u.bookingRepo.BookedDates(u.db.WithContext(ctx), guideID)
	if err != nil {
		u.log.Warnf("Failed to list booked dates: %+v", err)
		return nil, err
	}
	return &dto.BookedDatesResponse{Dates: dates}, nil
}

// isDuplicateKeyError detects a unique violation on the named constraint.
// Checks the postgres error code and falls back to GORM's translated error
// for other drivers.
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(constraintName))
	}
	return false
}
