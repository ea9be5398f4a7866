package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/TucanHome/tucan-chat-api/services"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler logs the dashboard admin in and out. There is a single
// admin account configured through the environment.
type AuthHandler struct {
	Sessions     *services.AdminSessions
	Username     string
	PasswordHash string
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if h.PasswordHash == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Dashboard login is disabled",
		})
	}

	if req.Username != h.Username ||
		bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(req.Password)) != nil {
		slog.Info("Invalid login attempt", "username", req.Username, "ip", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	session, err := h.Sessions.Create(c.Context(), req.Username, c.IP(), c.Get("User-Agent"))
	if err != nil {
		slog.Error("Failed to create admin session", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.AdminSessionCookie,
		Value:    session.SessionID,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"message": "Logged in", "username": session.Username})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies(services.AdminSessionCookie); sessionID != "" {
		if err := h.Sessions.Invalidate(c.Context(), sessionID); err != nil {
			slog.Warn("Failed to invalidate admin session", "error", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.AdminSessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}
