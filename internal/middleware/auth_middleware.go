package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/session"
)

// SessionAuth guards routes behind the process-wide session pointer. Every
// authenticated request refreshes the inactivity clock.
func SessionAuth(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := sessions.Current()
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Login required"))
		}

		if err := sessions.Touch(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Session update failed"))
		}

		c.Locals("email", email)
		return c.Next()
	}
}
