package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ExperienceCapacityMax = 50
)

// ExperienceCategories is the fixed set accepted on create/update, kept in
// sync with the oneof tags on the experience request structs.
var ExperienceCategories = []string{
	"food", "culture", "nature", "adventure", "art", "nightlife", "sports", "other",
}

type Experience struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Category        string    `gorm:"size:50;not null" json:"category"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Steps           []string  `gorm:"serializer:json;not null" json:"steps"`
	DateTime        time.Time `gorm:"not null" json:"dateTime"`
	DurationMinutes int       `gorm:"not null" json:"duration"`
	Capacity        int       `gorm:"not null" json:"capacity"`
	Price           float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Address         string    `gorm:"size:512;not null" json:"address"`
	GuideID         uuid.UUID `gorm:"type:uuid;not null;index" json:"guideId"`
	Images          []string  `gorm:"serializer:json" json:"images"`

	// Soft-delete marker. Listings are never physically removed. No column
	// default: a false value must survive Create, and GORM drops defaulted
	// zero values from the INSERT.
	IsActive bool `gorm:"not null" json:"isActive"`

	Rating       float64 `gorm:"not null;default:0" json:"rating"`
	ReviewsCount int     `gorm:"not null;default:0" json:"reviewsCount"`

	Guide    User      `gorm:"foreignkey:GuideID" json:"guide,omitempty"`
	Bookings []Booking `gorm:"foreignkey:ExperienceID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
