package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateBookingRequest struct {
	FullName      string `json:"fullname" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
	Phone         string `json:"phone" validate:"required,max=20"`
	PeopleCount   int    `json:"peopleCount" validate:"required,min=1"`
	Destination   string `json:"destination" validate:"required"`
	Date          string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cash online"`
	GuideID       string `json:"guide" validate:"omitempty,uuid"`
}

type RespondBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

// ConfirmGuidePaymentRequest lets a guide attest payment was received and
// optionally advance the payment status in the same call.
type ConfirmGuidePaymentRequest struct {
	PaymentStatus string           `json:"paymentStatus" validate:"omitempty,oneof=unpaid partially_paid paid"`
	PaymentAmount *decimal.Decimal `json:"paymentAmount"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string           `json:"paymentStatus" validate:"required,oneof=unpaid partially_paid paid"`
	PaymentAmount *decimal.Decimal `json:"paymentAmount"`
}

type UpdatePaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cash online"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=unpaid partially_paid paid"`
}

type RateBookingRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"omitempty,max=2000"`
}

// SearchBookingsRequest mirrors the query parameters of the guide search
// endpoint; all fields are optional.
type SearchBookingsRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending accepted declined completed"`
	Query  string `json:"query"`
	Sort   string `json:"sort" validate:"omitempty,oneof=newest oldest name"`
}

// Response DTOs

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	GuideID     uuid.UUID `json:"guide_id"`
	FullName    string    `json:"fullname"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	PeopleCount int       `json:"people_count"`
	Destination string    `json:"destination"`
	TrekDate    string    `json:"trek_date"`
	Status      string    `json:"status"`

	PaymentMethod         string          `json:"payment_method,omitempty"`
	PaymentStatus         string          `json:"payment_status"`
	PaymentAmount         decimal.Decimal `json:"payment_amount"`
	UserPaymentConfirmed  bool            `json:"user_payment_confirmed"`
	GuidePaymentConfirmed bool            `json:"guide_payment_confirmed"`

	Rating *int   `json:"rating,omitempty"`
	Review string `json:"review,omitempty"`

	Guide *UserSummary `json:"guide,omitempty"`
	User  *UserSummary `json:"user,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UserSummary is the trimmed account view embedded in booking responses.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

type BookedDatesResponse struct {
	Dates []string `json:"dates"`
}
