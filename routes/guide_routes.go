package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/handlers"
	"github.com/yusufkaya/experience_marketplace/middleware"
)

func GuideRoutes(app *fiber.App, cfg *configs.Config) {
	protected := middleware.Protected(cfg.JWTSecret)

	guides := app.Group("/guides")
	guides.Post("/apply", protected, handlers.ApplyAsGuide)
	guides.Get("/profile", protected, handlers.GetGuideProfile)
	guides.Put("/profile", protected, handlers.UpdateGuideProfile)
	guides.Get("/profile/:guideId", handlers.GetPublicGuideProfile)
}
