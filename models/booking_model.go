package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"

	BookingParticipantsMax = 10
)

// guideTransitions is the guide-side state machine. Cancelled and completed
// are terminal; nothing ever moves back to pending.
var guideTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted},
}

func IsBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	ExperienceID uuid.UUID `gorm:"type:uuid;not null;index" json:"experienceId"`
	GuideID      uuid.UUID `gorm:"type:uuid;not null;index" json:"guideId"`

	// Snapshot of the experience schedule at booking time; a guide moving
	// the experience never rewrites existing bookings.
	ExperienceDate       time.Time `gorm:"not null" json:"experienceDate"`
	NumberOfParticipants int       `gorm:"not null" json:"numberOfParticipants"`
	TotalPrice           float64   `gorm:"type:numeric(10,2);not null" json:"totalPrice"`

	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"paymentStatus"`
	Notes         string `gorm:"size:500" json:"notes"`

	ReminderSentAt *time.Time `json:"-"`

	User       User       `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Experience Experience `gorm:"foreignkey:ExperienceID" json:"experience,omitempty"`
	Guide      User       `gorm:"foreignkey:GuideID" json:"guide,omitempty"`
	Review     *Review    `gorm:"foreignkey:BookingID" json:"review,omitempty"`

	CreatedAt time.Time `json:"bookingDate"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// CanTransitionTo reports whether a guide may move the booking to target.
func (b *Booking) CanTransitionTo(target string) bool {
	for _, allowed := range guideTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsSeatHolding reports whether the booking still counts against the
// experience capacity.
func (b *Booking) IsSeatHolding() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
