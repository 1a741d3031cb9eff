package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/handlers"
	"github.com/yusufkaya/experience_marketplace/middleware"
)

func AuthRoutes(app *fiber.App, cfg *configs.Config) {
	h := handlers.NewAuthHandler(cfg)

	auth := app.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Get("/profile", middleware.Protected(cfg.JWTSecret), h.Profile)
}
