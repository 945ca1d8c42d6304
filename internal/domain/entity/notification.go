package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification is a fire-and-forget human-readable event addressed to one
// account. There is no delivery guarantee; a failed write is logged and
// dropped, never surfaced to the caller.
type Notification struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Metadata    JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// StringList type for GORM JSONB string arrays
type StringList []string

// Value returns json value, implement driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan scan value into a string slice, implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := []string{}
	err := json.Unmarshal(bytes, &result)
	*l = StringList(result)
	return err
}

// Common notification events
const (
	NotifyBookingRequested = "booking.requested"
	NotifyBookingAccepted  = "booking.accepted"
	NotifyBookingDeclined  = "booking.declined"
	NotifyBookingCompleted = "booking.completed"
	NotifyPaymentConfirmed = "payment.confirmed"
)
