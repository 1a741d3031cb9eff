package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/yusufkaya/experience_marketplace/database"
	"github.com/yusufkaya/experience_marketplace/services"
	"github.com/yusufkaya/experience_marketplace/utils"
)

type CreateExperienceRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Category    string   `json:"category" validate:"required,oneof=food culture nature adventure art nightlife sports other"`
	Description string   `json:"description" validate:"required"`
	Steps       []string `json:"steps" validate:"required,min=1,dive,required"`
	DateTime    string   `json:"dateTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Capacity    int      `json:"capacity" validate:"required,min=1,max=50"`
	Price       float64  `json:"price" validate:"gte=0"`
	Address     string   `json:"address" validate:"required,max=512"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

func CreateExperience(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Please provide all required fields")
	}
	dateTime, _ := time.Parse(time.RFC3339, req.DateTime)

	experience, err := services.CreateExperience(database.DB, guideID, services.CreateExperienceInput{
		Title:           req.Title,
		Category:        req.Category,
		Description:     req.Description,
		Steps:           req.Steps,
		DateTime:        dateTime,
		DurationMinutes: req.Duration,
		Capacity:        req.Capacity,
		Price:           req.Price,
		Address:         req.Address,
		Images:          req.Images,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Experience created successfully",
		"experience": experience,
	})
}

func GetExperiences(c *fiber.Ctx) error {
	filter := services.ExperienceFilter{
		Category: c.Query("category"),
		City:     c.Query("city"),
	}
	if v := c.Query("minPrice"); v != "" {
		if price, err := parsePrice(v); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if price, err := parsePrice(v); err == nil {
			filter.MaxPrice = &price
		}
	}
	if v := c.Query("dateFrom"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := c.Query("dateTo"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DateTo = &t
		}
	}

	page, err := services.ListExperiences(database.DB, filter, utils.ParsePageParams(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func parsePrice(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

func GetExperienceByID(c *fiber.Ctx) error {
	experienceID, err := uuid.Parse(c.Params("experienceId"))
	if err != nil {
		return utils.ValidationError("Invalid experience ID")
	}

	experience, err := services.GetExperience(database.DB, experienceID)
	if err != nil {
		return err
	}
	return c.JSON(experience)
}

type UpdateExperienceRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=255"`
	Category    *string  `json:"category" validate:"omitempty,oneof=food culture nature adventure art nightlife sports other"`
	Description *string  `json:"description"`
	Steps       []string `json:"steps" validate:"omitempty,min=1,dive,required"`
	DateTime    *string  `json:"dateTime" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Duration    *int     `json:"duration" validate:"omitempty,min=1"`
	Capacity    *int     `json:"capacity" validate:"omitempty,min=1,max=50"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Address     *string  `json:"address" validate:"omitempty,max=512"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

func UpdateExperience(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	experienceID, err := uuid.Parse(c.Params("experienceId"))
	if err != nil {
		return utils.ValidationError("Invalid experience ID")
	}

	var req UpdateExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Please provide valid fields")
	}

	in := services.UpdateExperienceInput{
		Title:           req.Title,
		Category:        req.Category,
		Description:     req.Description,
		Steps:           req.Steps,
		DurationMinutes: req.Duration,
		Capacity:        req.Capacity,
		Price:           req.Price,
		Address:         req.Address,
		Images:          req.Images,
	}
	if req.DateTime != nil {
		dateTime, _ := time.Parse(time.RFC3339, *req.DateTime)
		in.DateTime = &dateTime
	}

	experience, err := services.UpdateExperience(database.DB, guideID, experienceID, in)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "Experience updated successfully",
		"experience": experience,
	})
}

func DeleteExperience(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	experienceID, err := uuid.Parse(c.Params("experienceId"))
	if err != nil {
		return utils.ValidationError("Invalid experience ID")
	}

	if err := services.DeleteExperience(database.DB, guideID, experienceID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Experience deleted successfully"})
}

func GetMyExperiences(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	page, err := services.ListGuideExperiences(database.DB, guideID, c.Query("status", "all"), utils.ParsePageParams(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}
