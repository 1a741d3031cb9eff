package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/yusufkaya/experience_marketplace/database"
	"github.com/yusufkaya/experience_marketplace/services"
	"github.com/yusufkaya/experience_marketplace/utils"
)

type GuideApplicationRequest struct {
	FirstName      string            `json:"firstName" validate:"required,max=100"`
	LastName       string            `json:"lastName" validate:"required,max=100"`
	Bio            string            `json:"bio" validate:"required"`
	Expertise      string            `json:"expertise" validate:"required,max=255"`
	ActivityField  string            `json:"activityField" validate:"required,max=255"`
	City           string            `json:"city" validate:"required,max=100"`
	ActivityArea   string            `json:"activityArea" validate:"required,max=255"`
	Email          string            `json:"email" validate:"required,email"`
	Phone          string            `json:"phone" validate:"required,max=32"`
	SocialMedia    map[string]string `json:"socialMedia"`
	SkillDocuments []string          `json:"skillDocuments" validate:"omitempty,dive,url"`
	ProfileImage   string            `json:"profileImage" validate:"omitempty,url"`
}

func ApplyAsGuide(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req GuideApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Please provide all required fields")
	}

	profile, err := services.ApplyAsGuide(database.DB, userID, services.GuideApplicationInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		Expertise:      req.Expertise,
		ActivityField:  req.ActivityField,
		City:           req.City,
		ActivityArea:   req.ActivityArea,
		ContactEmail:   req.Email,
		ContactPhone:   req.Phone,
		SocialMedia:    req.SocialMedia,
		SkillDocuments: req.SkillDocuments,
		ProfileImage:   req.ProfileImage,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":      "Your application has been submitted for review",
		"guideProfile": profile,
	})
}

func GetGuideProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	profile, err := services.GetOwnGuideProfile(database.DB, userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"guideProfile": profile,
		"isApproved":   profile.IsApproved,
	})
}

type UpdateGuideProfileRequest struct {
	FirstName      *string           `json:"firstName" validate:"omitempty,max=100"`
	LastName       *string           `json:"lastName" validate:"omitempty,max=100"`
	Bio            *string           `json:"bio"`
	Expertise      *string           `json:"expertise" validate:"omitempty,max=255"`
	ActivityField  *string           `json:"activityField" validate:"omitempty,max=255"`
	City           *string           `json:"city" validate:"omitempty,max=100"`
	ActivityArea   *string           `json:"activityArea" validate:"omitempty,max=255"`
	Email          *string           `json:"email" validate:"omitempty,email"`
	Phone          *string           `json:"phone" validate:"omitempty,max=32"`
	SocialMedia    map[string]string `json:"socialMedia"`
	SkillDocuments []string          `json:"skillDocuments" validate:"omitempty,dive,url"`
	ProfileImage   *string           `json:"profileImage" validate:"omitempty,url"`
}

func UpdateGuideProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateGuideProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Please provide valid fields")
	}

	profile, err := services.UpdateGuideProfile(database.DB, userID, services.UpdateGuideProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		Expertise:      req.Expertise,
		ActivityField:  req.ActivityField,
		City:           req.City,
		ActivityArea:   req.ActivityArea,
		ContactEmail:   req.Email,
		ContactPhone:   req.Phone,
		SocialMedia:    req.SocialMedia,
		SkillDocuments: req.SkillDocuments,
		ProfileImage:   req.ProfileImage,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":      "Guide profile updated successfully",
		"guideProfile": profile,
	})
}

func GetPublicGuideProfile(c *fiber.Ctx) error {
	guideID, err := uuid.Parse(c.Params("guideId"))
	if err != nil {
		return utils.ValidationError("Invalid guide ID")
	}

	profile, err := services.GetPublicGuideProfile(database.DB, guideID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
