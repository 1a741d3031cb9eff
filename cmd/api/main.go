package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/database"
	"github.com/yusufkaya/experience_marketplace/jobs"
	"github.com/yusufkaya/experience_marketplace/notifications"
	"github.com/yusufkaya/experience_marketplace/routes"
	"github.com/yusufkaya/experience_marketplace/utils"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("🔥 Failed to load configuration: %v", err)
	}

	database.ConnectDB(cfg.DatabaseURL)
	database.Migrate()
	notifications.InitEmailService(cfg)

	c := cron.New()
	c.AddFunc("*/30 * * * *", jobs.SendBookingReminders)
	go c.Start()
	log.Println("✅ Booking reminder job scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Experience Marketplace",
		CaseSensitive: true,
		StrictRouting: false,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  utils.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app, cfg)
	routes.GuideRoutes(app, cfg)
	routes.ExperienceRoutes(app, cfg)
	routes.BookingRoutes(app, cfg)
	routes.UploadRoutes(app, cfg)

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundError("Cannot find this route")
	})

	log.Printf("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
