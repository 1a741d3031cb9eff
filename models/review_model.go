package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review belongs to exactly one booking; the unique index on BookingID backs
// the review-at-most-once rule at the storage level.
type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID    uuid.UUID `gorm:"type:uuid;not null;unique" json:"bookingId"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"userId"`
	ExperienceID uuid.UUID `gorm:"type:uuid;not null;index" json:"experienceId"`
	GuideID      uuid.UUID `gorm:"type:uuid;not null" json:"guideId"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
