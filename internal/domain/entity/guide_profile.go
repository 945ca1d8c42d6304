package entity

import "github.com/google/uuid"

// GuideProfile represents guide-specific profile data.
// TrekCount is bumped once per completed booking with an atomic SQL
// increment; average rating is never stored here, it is a read-time
// projection over bookings that carry a rating.
type GuideProfile struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Experience string    `gorm:"type:text" json:"experience,omitempty"`
	Languages  string    `gorm:"type:varchar(255)" json:"languages,omitempty"`
	TrekCount  int       `gorm:"not null;default:0" json:"trek_count"`
	QRImageURL string    `gorm:"column:qr_image_url;type:text" json:"qr_image_url,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (GuideProfile) TableName() string {
	return "guide_profiles"
}
