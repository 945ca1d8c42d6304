package usecase

import (
	"context"
	"errors"
	"fmt"

	"neptrip-backend/internal/converter"
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/delivery/http/middleware"
	"neptrip-backend/internal/domain/entity"
	"neptrip-backend/internal/domain/repository"
	"neptrip-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingAlreadyResolved = errors.New("booking has already been resolved")
	ErrBookingNotAccepted     = errors.New("booking is not in accepted status")
	ErrNegativeAmount         = errors.New("payment amount must not be negative")
)

type GuideBookingUsecase interface {
	GetRequests(ctx context.Context) (*dto.BookingListResponse, error)
	SearchBookings(ctx context.Context, req *dto.SearchBookingsRequest) (*dto.BookingListResponse, error)
	Respond(ctx context.Context, bookingID uuid.UUID, req *dto.RespondBookingRequest) (*dto.BookingResponse, error)
	Complete(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	ConfirmGuidePayment(ctx context.Context, bookingID uuid.UUID, req *dto.ConfirmGuidePaymentRequest) (*dto.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*dto.BookingResponse, error)
	UpdatePaymentMethod(ctx context.Context, bookingID uuid.UUID, req *dto.UpdatePaymentMethodRequest) (*dto.BookingResponse, error)
}

type guideBookingUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	bookingRepo   repository.BookingRepository
	profileRepo   repository.GuideProfileRepository
	notification  *service.NotificationService
	perPersonRate decimal.Decimal
}

func NewGuideBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	profileRepo repository.GuideProfileRepository,
	notification *service.NotificationService,
	perPersonRate decimal.Decimal,
) GuideBookingUsecase {
	return &guideBookingUsecase{
		db:            db,
		log:           log,
		bookingRepo:   bookingRepo,
		profileRepo:   profileRepo,
		notification:  notification,
		perPersonRate: perPersonRate,
	}
}

// findOwnedBooking loads the booking and verifies the acting guide is the
// guide on the record. Any guide acting on another guide's booking is
// rejected, not just non-guides.
func (u *guideBookingUsecase) findOwnedBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	guideID, ok := middleware.GetUserIDFromContext(ctx)
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
	if booking.GuideID != guideID {
		return nil, ErrBookingNotOwned
	}
	return booking, nil
}

// GetRequests returns the acting guide's pending booking requests
func (u *guideBookingUsecase) GetRequests(ctx context.Context) (*dto.BookingListResponse, error) {
	guideID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	bookings, err := u.bookingRepo.FindPendingByGuideID(u.db.WithContext(ctx), guideID)
	if err != nil {
		u.log.Warnf("Failed to find requests for guide %s: %+v", guideID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// SearchBookings is a read-only projection over the acting guide's own
// bookings with optional status, free-text and sort parameters.
func (u *guideBookingUsecase) SearchBookings(ctx context.Context, req *dto.SearchBookingsRequest) (*dto.BookingListResponse, error) {
	guideID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	filter := repository.BookingFilter{
		Status: entity.BookingStatus(req.Status),
		Query:  req.Query,
		Sort:   req.Sort,
	}

	bookings, err := u.bookingRepo.Search(u.db.WithContext(ctx), guideID, filter)
	if err != nil {
		u.log.Warnf("Failed to search bookings for guide %s: %+v", guideID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// Respond resolves a pending booking to accepted or declined. Responding to
// an already-resolved booking is rejected; the status flip is guarded at
// the storage layer so two racing responses cannot both win.
func (u *guideBookingUsecase) Respond(ctx context.Context, bookingID uuid.UUID, req *dto.RespondBookingRequest) (*dto.BookingResponse, error) {
	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	target := entity.BookingStatus(req.Status)
	if !booking.CanTransitionTo(target) {
		return nil, ErrBookingAlreadyResolved
	}

	rows, err := u.bookingRepo.UpdateStatus(u.db.WithContext(ctx), bookingID, entity.BookingStatusPending, target)
	if err != nil {
		u.log.Warnf("Failed to respond to booking %s: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBookingAlreadyResolved
	}
	booking.Status = target

	event := entity.NotifyBookingAccepted
	if target == entity.BookingStatusDeclined {
		event = entity.NotifyBookingDeclined
	}
	u.notification.Notify(ctx, booking.UserID, event,
		fmt.Sprintf("Your trek to %s on %s was %s", booking.Destination, booking.TrekDate, target),
		entity.JSON{"booking_id": booking.ID.String()})

	u.log.Infof("Booking %s: id=%s, guide=%s", target, bookingID, booking.GuideID)
	return converter.BookingToResponse(booking), nil
}

// Complete marks an accepted trek as carried out: status flips to
// completed, completed_at is stamped and the guide's trek counter is bumped
// atomically. A second attempt fails the state check.
func (u *guideBookingUsecase) Complete(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	rows, err := u.bookingRepo.Complete(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to complete booking %s: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBookingNotAccepted
	}

	if err := u.profileRepo.IncrementTrekCount(u.db.WithContext(ctx), booking.GuideID); err != nil {
		u.log.Warnf("Failed to increment trek count for guide %s: %+v", booking.GuideID, err)
		return nil, err
	}

	u.notification.Notify(ctx, booking.UserID, entity.NotifyBookingCompleted,
		fmt.Sprintf("Your trek to %s on %s is completed", booking.Destination, booking.TrekDate),
		entity.JSON{"booking_id": booking.ID.String()})

	full, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", bookingID, err)
		return converter.BookingToResponse(booking), nil
	}

	u.log.Infof("Booking completed: id=%s, guide=%s", bookingID, booking.GuideID)
	return converter.BookingToResponse(full), nil
}

// ConfirmGuidePayment flips the guide-side payment flag (monotone, never
// reset) and optionally advances the payment status. When the status moves
// to paid without an explicit amount, the total owed is computed as
// people count times the per-person rate.
func (u *guideBookingUsecase) ConfirmGuidePayment(ctx context.Context, bookingID uuid.UUID, req *dto.ConfirmGuidePaymentRequest) (*dto.BookingResponse, error) {
	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"guide_payment_confirmed": true,
	}

	if req.PaymentStatus != "" {
		status := entity.PaymentStatus(req.PaymentStatus)
		fields["payment_status"] = status
		booking.PaymentStatus = status

		if status == entity.PaymentStatusPaid && req.PaymentAmount == nil {
			amount := u.perPersonRate.Mul(decimal.NewFromInt(int64(booking.PeopleCount)))
			fields["payment_amount"] = amount
			booking.PaymentAmount = amount
		}
	}
	if req.PaymentAmount != nil {
		if req.PaymentAmount.IsNegative() {
			return nil, ErrNegativeAmount
		}
		fields["payment_amount"] = *req.PaymentAmount
		booking.PaymentAmount = *req.PaymentAmount
	}

	if err := u.bookingRepo.UpdatePayment(u.db.WithContext(ctx), bookingID, fields); err != nil {
		u.log.Warnf("Failed to confirm guide payment for booking %s: %+v", bookingID, err)
		return nil, err
	}
	booking.GuidePaymentConfirmed = true

	u.notification.Notify(ctx, booking.UserID, entity.NotifyPaymentConfirmed,
		fmt.Sprintf("Your guide confirmed payment was received for the trek on %s", booking.TrekDate),
		entity.JSON{"booking_id": booking.ID.String()})

	return converter.BookingToResponse(booking), nil
}

// UpdatePaymentStatus sets the payment status and optionally an explicit
// amount. Payment state never touches the lifecycle status.
func (u *guideBookingUsecase) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*dto.BookingResponse, error) {
	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"payment_status": entity.PaymentStatus(req.PaymentStatus),
	}
	booking.PaymentStatus = entity.PaymentStatus(req.PaymentStatus)

	if req.PaymentAmount != nil {
		if req.PaymentAmount.IsNegative() {
			return nil, ErrNegativeAmount
		}
		fields["payment_amount"] = *req.PaymentAmount
		booking.PaymentAmount = *req.PaymentAmount
	}

	if err := u.bookingRepo.UpdatePayment(u.db.WithContext(ctx), bookingID, fields); err != nil {
		u.log.Warnf("Failed to update payment status for booking %s: %+v", bookingID, err)
		return nil, err
	}

	return converter.BookingToResponse(booking), nil
}

// UpdatePaymentMethod sets the payment method (and optionally the status)
// on records whose schema version requires or allows one.
func (u *guideBookingUsecase) UpdatePaymentMethod(ctx context.Context, bookingID uuid.UUID, req *dto.UpdatePaymentMethodRequest) (*dto.BookingResponse, error) {
	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"payment_method": entity.PaymentMethod(req.PaymentMethod),
	}
	booking.PaymentMethod = entity.PaymentMethod(req.PaymentMethod)

	if req.PaymentStatus != "" {
		fields["payment_status"] = entity.PaymentStatus(req.PaymentStatus)
		booking.PaymentStatus = entity.PaymentStatus(req.PaymentStatus)
	}

	if err := u.bookingRepo.UpdatePayment(u.db.WithContext(ctx), bookingID, fields); err != nil {
		u.log.Warnf("Failed to update payment method for booking %s: %+v", bookingID, err)
		return nil, err
	}

	return converter.BookingToResponse(booking), nil
}
