package models

import (
	"time"

	"github.com/google/uuid"
)

// GuideProfile is keyed by the owning user. A plain user simply has no
// profile row. IsApproved is only ever flipped by the back-office review
// process, never through the API.
type GuideProfile struct {
	UserID        uuid.UUID `gorm:"type:uuid;primary_key" json:"userId"`
	FirstName     string    `gorm:"size:100;not null" json:"firstName"`
	LastName      string    `gorm:"size:100;not null" json:"lastName"`
	Bio           string    `gorm:"type:text;not null" json:"bio"`
	Expertise     string    `gorm:"size:255;not null" json:"expertise"`
	ActivityField string    `gorm:"size:255;not null" json:"activityField"`
	City          string    `gorm:"size:100;not null" json:"city"`
	ActivityArea  string    `gorm:"size:255;not null" json:"activityArea"`
	ContactEmail  string    `gorm:"size:255;not null" json:"email"`
	ContactPhone  string    `gorm:"size:32;not null" json:"phone"`

	SocialMedia    map[string]string `gorm:"serializer:json" json:"socialMedia"`
	SkillDocuments []string          `gorm:"serializer:json" json:"skillDocuments"`
	ProfileImage   string            `gorm:"size:512" json:"profileImage"`

	IsApproved bool `gorm:"not null;default:false" json:"isApproved"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// PublicGuideProfile is the projection exposed to anyone browsing guides.
// Contact details and skill documents stay private.
type PublicGuideProfile struct {
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Bio           string            `json:"bio"`
	Expertise     string            `json:"expertise"`
	ActivityField string            `json:"activityField"`
	City          string            `json:"city"`
	ActivityArea  string            `json:"activityArea"`
	ProfileImage  string            `json:"profileImage"`
	SocialMedia   map[string]string `json:"socialMedia"`
}

func (p *GuideProfile) Public() PublicGuideProfile {
	return PublicGuideProfile{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Bio:           p.Bio,
		Expertise:     p.Expertise,
		ActivityField: p.ActivityField,
		City:          p.City,
		ActivityArea:  p.ActivityArea,
		ProfileImage:  p.ProfileImage,
		SocialMedia:   p.SocialMedia,
	}
}
