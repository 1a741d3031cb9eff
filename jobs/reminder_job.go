package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/yusufkaya/experience_marketplace/database"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/notifications"
)

// SendBookingReminders mails both sides of every confirmed booking whose
// experience starts within the next 24 hours. ReminderSentAt keeps the job
// from mailing twice across runs.
func SendBookingReminders() {
	log.Println("Running job: SendBookingReminders...")

	now := time.Now()
	horizon := now.Add(24 * time.Hour)

	var upcoming []models.Booking
	err := database.DB.
		Preload("User").
		Preload("Guide").
		Preload("Experience").
		Where("status = ? AND reminder_sent_at IS NULL AND experience_date BETWEEN ? AND ?",
			models.BookingStatusConfirmed, now, horizon).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming bookings: %v", err)
		return
	}

	if len(upcoming) == 0 {
		log.Println("No upcoming bookings to remind.")
		return
	}

	for _, booking := range upcoming {
		when := booking.ExperienceDate.Format("Mon, 02 Jan 2006 15:04")

		notifications.SendEmail(booking.User.Name, booking.User.Email,
			"Your experience is coming up!",
			fmt.Sprintf("<h1>See you soon!</h1><p>Your booking for %q starts at %s.</p>",
				booking.Experience.Title, when))
		notifications.SendEmail(booking.Guide.Name, booking.Guide.Email,
			"You have an experience coming up",
			fmt.Sprintf("<h1>Get ready</h1><p>%q starts at %s with %d booked participant(s).</p>",
				booking.Experience.Title, when, booking.NumberOfParticipants))

		sentAt := time.Now()
		booking.ReminderSentAt = &sentAt
		// An unstamped booking gets re-mailed on the next run.
		if err := database.DB.Save(&booking).Error; err != nil {
			log.Printf("Error stamping reminder for booking %s: %v", booking.ID, err)
		}
	}

	log.Printf("Sent reminders for %d booking(s).", len(upcoming))
}
