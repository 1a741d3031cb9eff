package configs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and passed explicitly to the components
// that need it. Secrets are never read from the environment at call sites.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	CloudinaryURL string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   10 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		BrevoAPIKey:      os.Getenv("BREVO_API_KEY"),
		EmailSender:      os.Getenv("EMAIL_SENDER"),
		EmailSenderName:  os.Getenv("EMAIL_SENDER_NAME"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
