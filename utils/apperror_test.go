package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorHTTPStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{ValidationError("bad input"), fiber.StatusUnprocessableEntity},
		{NotFoundError("missing"), fiber.StatusNotFound},
		{AuthenticationError("who are you"), fiber.StatusUnauthorized},
		{AuthorizationError("not yours"), fiber.StatusForbidden},
		{StateConflictError("too late"), fiber.StatusConflict},
		{UnexpectedError("boom", errors.New("db down")), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), tc.err.Message)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := UnexpectedError("Failed to save", cause)

	assert.Equal(t, "Failed to save", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("while booking: %w", err)
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindUnexpected, appErr.Kind)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return StateConflictError("This experience is fully booked")
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.ErrMethodNotAllowed
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("secret internal detail")
	})

	resp := getPath(t, app, "/conflict")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "This experience is fully booked", messageOf(t, resp))

	resp = getPath(t, app, "/fiber")
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)

	// internal detail never reaches the client
	resp = getPath(t, app, "/plain")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Unknown error occurred!", messageOf(t, resp))
}
