package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Email             string    `gorm:"size:255;not null;unique" json:"email"`
	Password          string    `gorm:"not null" json:"-"`
	Phone             *string   `gorm:"size:32" json:"phone,omitempty"`
	IsExperienceGuide bool      `gorm:"not null;default:false" json:"isExperienceGuide"`

	GuideProfile *GuideProfile `gorm:"foreignkey:UserID" json:"guideProfile,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// CanActAsGuide reports whether the user may publish experiences. The guide
// flag alone is not enough, the profile must also have been approved.
func (u *User) CanActAsGuide() bool {
	return u.IsExperienceGuide && u.GuideProfile != nil && u.GuideProfile.IsApproved
}
