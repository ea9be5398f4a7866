package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authApp(h *AuthHandler) *fiber.App {
	app := fiber.New()
	app.Post("/auth/login", h.Login)
	return app
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	h := &AuthHandler{Username: "admin"}

	resp, _ := postJSON(t, authApp(h), "/auth/login", LoginRequest{
		Username: "admin", Password: "whatever",
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	h := &AuthHandler{Username: "admin", PasswordHash: string(hash)}
	app := authApp(h)

	resp, _ := postJSON(t, app, "/auth/login", LoginRequest{
		Username: "admin", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = postJSON(t, app, "/auth/login", LoginRequest{
		Username: "intruder", Password: "correct horse",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
