package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/handlers"
	"github.com/yusufkaya/experience_marketplace/middleware"
)

func ExperienceRoutes(app *fiber.App, cfg *configs.Config) {
	protected := middleware.Protected(cfg.JWTSecret)

	experiences := app.Group("/experiences")
	experiences.Get("", handlers.GetExperiences)
	experiences.Post("", protected, handlers.CreateExperience)

	// Registered before /:experienceId so "guide" is not parsed as an id.
	experiences.Get("/guide/my-experiences", protected, handlers.GetMyExperiences)

	experiences.Get("/:experienceId", handlers.GetExperienceByID)
	experiences.Put("/:experienceId", protected, handlers.UpdateExperience)
	experiences.Delete("/:experienceId", protected, handlers.DeleteExperience)
}
