package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookExperienceInput struct {
	ExperienceID         uuid.UUID
	NumberOfParticipants int
	Notes                string
}

// BookExperience runs the capacity admission sequence. The experience row is
// locked for the duration of the transaction so that two near-simultaneous
// bookings cannot both pass the capacity check and jointly oversell it.
func BookExperience(db *gorm.DB, userID uuid.UUID, in BookExperienceInput) (*models.Booking, error) {
	if in.NumberOfParticipants < 1 {
		return nil, utils.ValidationError("Please provide experience ID and number of participants")
	}
	if in.NumberOfParticipants > models.BookingParticipantsMax {
		return nil, utils.ValidationError(fmt.Sprintf("A booking may hold at most %d participants", models.BookingParticipantsMax))
	}

	var booking models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		var experience models.Experience
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&experience, "id = ?", in.ExperienceID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Experience not found")
			}
			return utils.UnexpectedError("Failed to book experience", err)
		}

		if !experience.IsActive {
			return utils.StateConflictError("This experience is no longer available")
		}
		if !experience.DateTime.After(time.Now()) {
			return utils.StateConflictError("Cannot book past experiences")
		}

		var reserved int64
		err = tx.Model(&models.Booking{}).
			Where("experience_id = ? AND status IN ?", experience.ID,
				[]string{models.BookingStatusPending, models.BookingStatusConfirmed}).
			Select("COALESCE(SUM(number_of_participants), 0)").
			Scan(&reserved).Error
		if err != nil {
			return utils.UnexpectedError("Failed to book experience", err)
		}

		if int(reserved)+in.NumberOfParticipants > experience.Capacity {
			return utils.StateConflictError("Not enough capacity for this booking")
		}

		booking = models.Booking{
			UserID:               userID,
			ExperienceID:         experience.ID,
			GuideID:              experience.GuideID,
			ExperienceDate:       experience.DateTime,
			NumberOfParticipants: in.NumberOfParticipants,
			TotalPrice:           experience.Price * float64(in.NumberOfParticipants),
			Status:               models.BookingStatusPending,
			PaymentStatus:        models.PaymentStatusPending,
			Notes:                in.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return utils.UnexpectedError("Failed to book experience", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus applies a guide-side transition. Terminal states are
// frozen; the previous status is not retained.
func UpdateBookingStatus(db *gorm.DB, guideID, bookingID uuid.UUID, target string) (*models.Booking, error) {
	if !models.IsBookingStatus(target) {
		return nil, utils.ValidationError("Invalid status")
	}

	var booking models.Booking
	if err := db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Booking not found")
		}
		return nil, utils.UnexpectedError("Failed to update booking status", err)
	}

	if booking.GuideID != guideID {
		return nil, utils.AuthorizationError("You can only update your own bookings")
	}
	if !booking.CanTransitionTo(target) {
		return nil, utils.StateConflictError(
			fmt.Sprintf("Cannot move a %s booking to %s", booking.Status, target))
	}

	booking.Status = target
	if err := db.Save(&booking).Error; err != nil {
		return nil, utils.UnexpectedError("Failed to update booking status", err)
	}
	return &booking, nil
}

// CancelBooking is the booker-side cancellation. Re-cancelling is an error,
// not a no-op, and past experiences cannot be cancelled retroactively.
func CancelBooking(db *gorm.DB, userID, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Booking not found")
		}
		return nil, utils.UnexpectedError("Failed to cancel booking", err)
	}

	if booking.UserID != userID {
		return nil, utils.AuthorizationError("You can only cancel your own bookings")
	}
	if booking.Status == models.BookingStatusCompleted {
		return nil, utils.StateConflictError("Cannot cancel completed bookings")
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, utils.StateConflictError("Booking is already cancelled")
	}
	if !booking.ExperienceDate.After(time.Now()) {
		return nil, utils.StateConflictError("Cannot cancel bookings for past experiences")
	}

	// Status and payment status flip together in a single record update.
	err := db.Model(&booking).Updates(map[string]interface{}{
		"status":         models.BookingStatusCancelled,
		"payment_status": models.PaymentStatusRefunded,
	}).Error
	if err != nil {
		return nil, utils.UnexpectedError("Failed to cancel booking", err)
	}
	return &booking, nil
}

type AddReviewInput struct {
	Rating  int
	Comment string
}

// AddReview attaches the single review a completed booking may carry, then
// recomputes the experience rating from the full population of completed,
// reviewed bookings. The full scan keeps the average correct regardless of
// the order reviews arrive in.
func AddReview(db *gorm.DB, userID, bookingID uuid.UUID, in AddReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, utils.ValidationError("Please provide a valid rating (1-5)")
	}

	var review models.Review
	err := db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Booking not found")
			}
			return utils.UnexpectedError("Failed to add review", err)
		}

		if booking.UserID != userID {
			return utils.AuthorizationError("You can only review your own bookings")
		}
		if booking.Status != models.BookingStatusCompleted {
			return utils.StateConflictError("You can only review completed experiences")
		}

		var existing models.Review
		err := tx.Where("booking_id = ?", booking.ID).First(&existing).Error
		if err == nil {
			return utils.StateConflictError("You have already reviewed this experience")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.UnexpectedError("Failed to add review", err)
		}

		review = models.Review{
			BookingID:    booking.ID,
			UserID:       userID,
			ExperienceID: booking.ExperienceID,
			GuideID:      booking.GuideID,
			Rating:       in.Rating,
			Comment:      in.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return utils.UnexpectedError("Failed to add review", err)
		}

		return recomputeExperienceRating(tx, booking.ExperienceID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func recomputeExperienceRating(tx *gorm.DB, experienceID uuid.UUID) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&models.Review{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Where("bookings.experience_id = ? AND bookings.status = ?",
			experienceID, models.BookingStatusCompleted).
		Select("COALESCE(AVG(reviews.rating), 0) AS avg, COUNT(*) AS count").
		Scan(&agg).Error
	if err != nil {
		return utils.UnexpectedError("Failed to add review", err)
	}

	err = tx.Model(&models.Experience{}).
		Where("id = ?", experienceID).
		Updates(map[string]interface{}{
			"rating":        agg.Avg,
			"reviews_count": agg.Count,
		}).Error
	if err != nil {
		return utils.UnexpectedError("Failed to add review", err)
	}
	return nil
}

type BookingPage struct {
	Bookings    []models.Booking `json:"bookings"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	TotalCount  int64            `json:"totalCount"`
}

// ListUserBookings returns the booker's bookings, newest first, with the
// experience and guide projections preloaded.
func ListUserBookings(db *gorm.DB, userID uuid.UUID, status string, page utils.PageParams) (*BookingPage, error) {
	return listBookings(db, "user_id", userID, status, page, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Experience").Preload("Guide.GuideProfile").Preload("Review")
	})
}

// ListGuideBookings returns the bookings taken against the guide's
// experiences, newest first.
func ListGuideBookings(db *gorm.DB, guideID uuid.UUID, status string, page utils.PageParams) (*BookingPage, error) {
	return listBookings(db, "guide_id", guideID, status, page, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Experience").Preload("User").Preload("Review")
	})
}

func listBookings(db *gorm.DB, ownerColumn string, ownerID uuid.UUID, status string, page utils.PageParams, preload func(*gorm.DB) *gorm.DB) (*BookingPage, error) {
	query := db.Model(&models.Booking{}).Where(ownerColumn+" = ?", ownerID)
	if status != "" && status != "all" {
		if !models.IsBookingStatus(status) {
			return nil, utils.ValidationError("Invalid status")
		}
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, utils.UnexpectedError("Failed to get bookings", err)
	}

	bookings := []models.Booking{}
	err := preload(query).
		Order("created_at desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, utils.UnexpectedError("Failed to get bookings", err)
	}

	return &BookingPage{
		Bookings:    bookings,
		TotalPages:  utils.TotalPages(totalCount, page.Limit),
		CurrentPage: page.Page,
		TotalCount:  totalCount,
	}, nil
}
