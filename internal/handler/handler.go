package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lammatna/lammatna-backend/internal/models"
)

// statusFor maps the data layer's error taxonomy to HTTP statuses. Everything
// is recovered here; no error escapes past the handler boundary.
func statusFor(err error) int {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrDuplicateEmail), errors.Is(err, models.ErrDuplicateUsername):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(models.ErrorResponse(err.Error()))
}

// currentEmail reads the session identity the middleware stored.
func currentEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals("email").(string); ok {
		return email
	}
	return ""
}
