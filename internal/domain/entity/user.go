package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents any account in the system; Role decides what it may do.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Role      string    `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Avatar    string    `gorm:"type:text" json:"avatar,omitempty"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	GuideProfile *GuideProfile `gorm:"foreignKey:UserID" json:"guide_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Role constants
const (
	RoleUser  = "user"
	RoleGuide = "guide"
	RoleAdmin = "admin"
)

// IsGuide checks if the account services bookings
func (u *User) IsGuide() bool {
	return u.Role == RoleGuide
}

// IsAdmin checks if the account manages other accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
