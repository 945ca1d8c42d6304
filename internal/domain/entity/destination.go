package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DifficultyLevel grades a trekking destination
type DifficultyLevel string

const (
	DifficultyEasy     DifficultyLevel = "Easy"
	DifficultyModerate DifficultyLevel = "Moderate"
	DifficultyHard     DifficultyLevel = "Hard"
)

// Destination is a catalog entry for a trekking spot shown to users when
// they pick where to go.
type Destination struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Location        string          `gorm:"type:varchar(255);not null" json:"location"`
	Altitude        float64         `gorm:"not null" json:"altitude"`
	Rating          int             `gorm:"not null" json:"rating"`
	Review          string          `gorm:"type:text;not null" json:"review"`
	Distance        float64         `gorm:"not null" json:"distance"`
	TimeToComplete  string          `gorm:"type:varchar(100);not null" json:"time_to_complete"`
	DifficultyLevel DifficultyLevel `gorm:"type:varchar(20);not null" json:"difficulty_level"`
	EcoCulturalInfo string          `gorm:"type:text;not null" json:"eco_cultural_info"`
	GearChecklist   StringList      `gorm:"type:jsonb" json:"gear_checklist"`
	Images          StringList      `gorm:"type:jsonb" json:"images,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Destination) TableName() string {
	return "destinations"
}

func (d *Destination) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ValidDifficultyLevel checks a difficulty value against the enum
func ValidDifficultyLevel(d DifficultyLevel) bool {
	return d == DifficultyEasy || d == DifficultyModerate || d == DifficultyHard
}
