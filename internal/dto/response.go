package dto

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/validation"
)

type ErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Fail writes an ErrorResponse with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Error: true, Message: message})
}

// FailValidation writes a 400 carrying field-level messages when err holds them.
func FailValidation(c *fiber.Ctx, err error) error {
	var fields validation.FieldErrors
	if errors.As(err, &fields) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: true, Message: "Validation failed", Fields: fields,
		})
	}
	return Fail(c, fiber.StatusBadRequest, err.Error())
}

// Unauthorized is the reply for requests without a resolved profile.
func Unauthorized(c *fiber.Ctx) error {
	return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
}
