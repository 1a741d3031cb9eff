package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/yusufkaya/experience_marketplace/database"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/notifications"
	"github.com/yusufkaya/experience_marketplace/services"
	"github.com/yusufkaya/experience_marketplace/utils"
)

type CreateBookingRequest struct {
	ExperienceID         string `json:"experienceId" validate:"required,uuid"`
	NumberOfParticipants int    `json:"numberOfParticipants" validate:"required,min=1,max=10"`
	Notes                string `json:"notes" validate:"max=500"`
}

// BookingResponse is the creation/mutation projection of a booking.
type BookingResponse struct {
	ID                   string    `json:"id"`
	ExperienceID         string    `json:"experienceId"`
	ExperienceDate       time.Time `json:"experienceDate"`
	NumberOfParticipants int       `json:"numberOfParticipants"`
	TotalPrice           float64   `json:"totalPrice"`
	Status               string    `json:"status"`
	PaymentStatus        string    `json:"paymentStatus"`
}

func toBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                   b.ID.String(),
		ExperienceID:         b.ExperienceID.String(),
		ExperienceDate:       b.ExperienceDate,
		NumberOfParticipants: b.NumberOfParticipants,
		TotalPrice:           b.TotalPrice,
		Status:               b.Status,
		PaymentStatus:        b.PaymentStatus,
	}
}

func BookExperience(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Please provide experience ID and number of participants")
	}
	experienceID, _ := uuid.Parse(req.ExperienceID)

	booking, err := services.BookExperience(database.DB, userID, services.BookExperienceInput{
		ExperienceID:         experienceID,
		NumberOfParticipants: req.NumberOfParticipants,
		Notes:                req.Notes,
	})
	if err != nil {
		return err
	}

	go notifyBookingCreated(booking)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Experience booked successfully",
		"booking": toBookingResponse(booking),
	})
}

func notifyBookingCreated(booking *models.Booking) {
	var booker, guide models.User
	if err := database.DB.First(&booker, "id = ?", booking.UserID).Error; err != nil {
		return
	}
	if err := database.DB.First(&guide, "id = ?", booking.GuideID).Error; err != nil {
		return
	}
	notifications.SendEmail(booker.Name, booker.Email, "Booking received",
		fmt.Sprintf("<h1>Booking received</h1><p>Your booking for %d participant(s) is pending the guide's confirmation.</p>", booking.NumberOfParticipants))
	notifications.SendEmail(guide.Name, guide.Email, "You have a new booking!",
		"<h1>New booking</h1><p>A traveller has booked one of your experiences. Confirm it from your dashboard.</p>")
}

func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	page, err := services.ListUserBookings(database.DB, userID, c.Query("status", "all"), utils.ParsePageParams(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func GetGuideBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	page, err := services.ListGuideBookings(database.DB, guideID, c.Query("status", "all"), utils.ParsePageParams(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

func UpdateBookingStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return utils.ValidationError("Invalid booking ID")
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Invalid status")
	}

	booking, err := services.UpdateBookingStatus(database.DB, guideID, bookingID, req.Status)
	if err != nil {
		return err
	}

	go notifyStatusChanged(booking)

	return c.JSON(fiber.Map{
		"message": "Booking status updated successfully",
		"booking": fiber.Map{
			"id":        booking.ID.String(),
			"status":    booking.Status,
			"updatedAt": booking.UpdatedAt,
		},
	})
}

func notifyStatusChanged(booking *models.Booking) {
	var booker models.User
	if err := database.DB.First(&booker, "id = ?", booking.UserID).Error; err != nil {
		return
	}
	notifications.SendEmail(booker.Name, booker.Email, "Booking update",
		fmt.Sprintf("<h1>Booking update</h1><p>Your booking is now %s.</p>", booking.Status))
}

func CancelBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return utils.ValidationError("Invalid booking ID")
	}

	booking, err := services.CancelBooking(database.DB, userID, bookingID)
	if err != nil {
		return err
	}

	go notifyBookingCancelled(booking)

	return c.JSON(fiber.Map{
		"message": "Booking cancelled successfully",
		"booking": fiber.Map{
			"id":            booking.ID.String(),
			"status":        booking.Status,
			"paymentStatus": booking.PaymentStatus,
		},
	})
}

func notifyBookingCancelled(booking *models.Booking) {
	var guide models.User
	if err := database.DB.First(&guide, "id = ?", booking.GuideID).Error; err != nil {
		return
	}
	notifications.SendEmail(guide.Name, guide.Email, "Booking cancelled",
		"<h1>Booking cancelled</h1><p>A traveller has cancelled a booking. The seats are available again.</p>")
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

func AddReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return utils.ValidationError("Invalid booking ID")
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Please provide a valid rating (1-5)")
	}

	review, err := services.AddReview(database.DB, userID, bookingID, services.AddReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}

	go notifyReviewReceived(review)

	return c.JSON(fiber.Map{
		"message": "Review added successfully",
		"review":  review,
	})
}

func notifyReviewReceived(review *models.Review) {
	var guide models.User
	if err := database.DB.First(&guide, "id = ?", review.GuideID).Error; err != nil {
		return
	}
	notifications.SendEmail(guide.Name, guide.Email, "You received a review",
		fmt.Sprintf("<h1>New review</h1><p>A traveller rated one of your experiences %d/5.</p>", review.Rating))
}
