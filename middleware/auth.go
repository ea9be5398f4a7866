package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/TucanHome/tucan-chat-api/services"
)

// RequireAuth guards the dashboard routes with the admin session cookie.
func RequireAuth(sessions *services.AdminSessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(services.AdminSessionCookie)
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		session, err := sessions.Get(c.Context(), sessionID)
		if err != nil {
			slog.Error("Failed to get admin session", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		c.Locals("admin_user", session.Username)

		return c.Next()
	}
}
