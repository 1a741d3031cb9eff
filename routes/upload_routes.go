package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/handlers"
	"github.com/yusufkaya/experience_marketplace/middleware"
)

func UploadRoutes(app *fiber.App, cfg *configs.Config) {
	h := handlers.NewUploadHandler(cfg)

	uploads := app.Group("/uploads", middleware.Protected(cfg.JWTSecret))
	uploads.Get("/signature", h.GenerateUploadSignature)
}
