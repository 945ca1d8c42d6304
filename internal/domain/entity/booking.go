package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCompleted BookingStatus = "completed"
)

// PaymentMethod is how the trekker pays the guide
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// PaymentStatus tracks how much of the booking has been paid
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

// BookingSchemaVersion tags newly created bookings. Version 2 made the
// payment method a required field; version 1 records predate that and are
// exempt from the requirement.
const BookingSchemaVersion = 2

// ActiveStatuses are the statuses that hold a requester's "one trek at a
// time" slot and a guide's date. Declined and completed bookings are
// resolved and free both.
var ActiveStatuses = []BookingStatus{BookingStatusPending, BookingStatusAccepted}

// Booking represents a single trek engagement between a requester and a
// guide for a calendar date. TrekDate is a plain YYYY-MM-DD string; the
// product has no time-of-day component.
type Booking struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	GuideID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"guide_id"`
	FullName    string        `gorm:"type:varchar(255);not null" json:"full_name"`
	Email       string        `gorm:"type:varchar(255);not null" json:"email"`
	Address     string        `gorm:"type:text;not null" json:"address"`
	Phone       string        `gorm:"type:varchar(20);not null" json:"phone"`
	PeopleCount int           `gorm:"not null" json:"people_count"`
	Destination string        `gorm:"type:varchar(255);not null" json:"destination"`
	TrekDate    string        `gorm:"type:varchar(10);not null;index" json:"trek_date"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	PaymentMethod         PaymentMethod   `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	PaymentStatus         PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	PaymentAmount         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"payment_amount"`
	UserPaymentConfirmed  bool            `gorm:"not null;default:false" json:"user_payment_confirmed"`
	GuidePaymentConfirmed bool            `gorm:"not null;default:false" json:"guide_payment_confirmed"`

	Rating *int   `gorm:"type:smallint" json:"rating,omitempty"`
	Review string `gorm:"type:text" json:"review,omitempty"`

	SchemaVersion int        `gorm:"not null;default:2" json:"schema_version"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User  User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Guide User `gorm:"foreignKey:GuideID" json:"guide,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsActive checks if the booking still holds its requester and guide slots
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusAccepted
}

// IsPending checks if the booking is awaiting a guide response
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsAccepted checks if the booking has been accepted but not completed
func (b *Booking) IsAccepted() bool {
	return b.Status == BookingStatusAccepted
}

// IsCompleted checks if the trek has been carried out
func (b *Booking) IsCompleted() bool {
	return b.Status == BookingStatusCompleted
}

// CanTransitionTo reports whether moving to target is a legal edge of the
// lifecycle: pending -> accepted|declined, accepted -> completed. Declined
// and completed are terminal.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	switch b.Status {
	case BookingStatusPending:
		return target == BookingStatusAccepted || target == BookingStatusDeclined
	case BookingStatusAccepted:
		return target == BookingStatusCompleted
	default:
		return false
	}
}

// RequiresPaymentMethod reports whether the record's schema version makes
// the payment method mandatory.
func (b *Booking) RequiresPaymentMethod() bool {
	return b.SchemaVersion >= BookingSchemaVersion
}

// ValidPaymentMethod checks a payment method value against the enum
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCash || m == PaymentMethodOnline
}

// ValidPaymentStatus checks a payment status value against the enum
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPartiallyPaid || s == PaymentStatusPaid
}
