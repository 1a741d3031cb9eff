package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/handlers"
	"github.com/yusufkaya/experience_marketplace/middleware"
)

func BookingRoutes(app *fiber.App, cfg *configs.Config) {
	bookings := app.Group("/bookings", middleware.Protected(cfg.JWTSecret))

	bookings.Post("", handlers.BookExperience)
	bookings.Get("/my-bookings", handlers.GetMyBookings)
	bookings.Get("/guide-bookings", handlers.GetGuideBookings)
	bookings.Put("/:bookingId/status", handlers.UpdateBookingStatus)
	bookings.Put("/:bookingId/cancel", handlers.CancelBooking)
	bookings.Post("/:bookingId/review", handlers.AddReview)
}
