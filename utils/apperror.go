package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindAuthentication
	KindAuthorization
	KindStateConflict
	KindUnexpected
)

// AppError is the error currency between services and the HTTP layer. Err
// carries the internal cause for server-side logging and is never serialized
// to the client.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindNotFound:
		return fiber.StatusNotFound
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindStateConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func AuthenticationError(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

func AuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func StateConflictError(message string) *AppError {
	return &AppError{Kind: KindStateConflict, Message: message}
}

// UnexpectedError wraps a persistence or internal failure behind a fixed
// user-facing message. The cause is kept for the error handler's log line.
func UnexpectedError(message string, err error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorHandler is the single place application errors become responses.
// Every error body is {"message": "..."}; unexpected causes are logged
// here and never leak to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := AsAppError(err); ok {
		if appErr.Kind == KindUnexpected {
			log.Printf("[ERROR] %v | Path: %s | Method: %s", appErr.Unwrap(), c.Path(), c.Method())
		}
		return c.Status(appErr.HTTPStatus()).JSON(fiber.Map{"message": appErr.Message})
	}

	code := fiber.StatusInternalServerError
	message := "Unknown error occurred!"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
	}
	return c.Status(code).JSON(fiber.Map{"message": message})
}
