package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/database"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/notifications"
	"github.com/yusufkaya/experience_marketplace/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

const refreshCookieName = "refreshToken"
const refreshCookiePath = "/auth/refresh"

type AuthHandler struct {
	Cfg *configs.Config
}

func NewAuthHandler(cfg *configs.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the shape shared by register and login.
type AuthResponse struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccessToken string `json:"accessToken"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Please provide name, email and password")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return utils.ValidationError("User already exists, please login instead")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.UnexpectedError("Registration failed, please try again", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.UnexpectedError("Registration failed, please try again", err)
	}

	user := models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return utils.UnexpectedError("Registration failed, please try again", err)
	}

	go notifications.SendEmail(user.Name, user.Email, "Welcome!",
		"<h1>Welcome!</h1><p>Thank you for registering. Your next experience is a few clicks away.</p>")

	return h.respondWithTokens(c, &user, fiber.StatusCreated)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationError("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError("Please provide email and password")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return utils.AuthenticationError("Invalid credentials, could not log you in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return utils.AuthenticationError("Invalid credentials, could not log you in")
	}

	return h.respondWithTokens(c, &user, fiber.StatusOK)
}

func (h *AuthHandler) respondWithTokens(c *fiber.Ctx, user *models.User, status int) error {
	accessToken, err := utils.IssueAccessToken(user.ID, user.Email, h.Cfg.JWTSecret, h.Cfg.AccessTokenTTL)
	if err != nil {
		return utils.UnexpectedError("Failed to create token", err)
	}
	refreshToken, err := utils.IssueRefreshToken(user.ID, h.Cfg.JWTRefreshSecret, h.Cfg.RefreshTokenTTL)
	if err != nil {
		return utils.UnexpectedError("Failed to create token", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		Expires:  time.Now().Add(h.Cfg.RefreshTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.Status(status).JSON(AuthResponse{
		UserID:      user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		AccessToken: accessToken,
	})
}

// Refresh exchanges a valid refresh cookie for a fresh access token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookieName)
	if refreshToken == "" {
		return utils.AuthenticationError("No token")
	}

	userID, err := utils.ParseRefreshToken(refreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		return utils.AuthorizationError("Invalid token")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return utils.AuthorizationError("Invalid token")
	}

	accessToken, err := utils.IssueAccessToken(user.ID, user.Email, h.Cfg.JWTSecret, h.Cfg.AccessTokenTTL)
	if err != nil {
		return utils.UnexpectedError("Failed to create token", err)
	}
	return c.JSON(fiber.Map{"accessToken": accessToken})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, err := utils.UserIDFromClaims(claims)
	if err != nil {
		return utils.AuthenticationError("Authentication failed! Invalid token.")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return utils.NotFoundError("User not found")
	}

	return c.JSON(fiber.Map{
		"userId": user.ID.String(),
		"email":  user.Email,
		"name":   user.Name,
	})
}
