package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
)

// Protected verifies the bearer token against the process-wide access
// secret and leaves the parsed token in c.Locals("user"). Every failure
// mode (missing, malformed, bad signature, expired) is answered the same
// way and the wrapped handler never runs.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"message": "Authentication failed! Invalid token."})
}
