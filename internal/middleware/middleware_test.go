package middleware

import (
	"net/http/httptest"
	"testing"

	"benigna-backend/domain"
	"benigna-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(jwtService jwt.JWTService) *fiber.App {
	m := NewMiddleware()
	app := fiber.New()
	app.Use(m.CORSMiddleware())
	app.Get("/me", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string) + ":" + c.Locals("role").(string))
	})
	app.Get("/admin", m.AuthMiddleware(jwtService), m.RoleMiddleware(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, authorization string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("secret")
	app := newApp(jwtService)

	token, err := jwtService.GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", "Token "+token))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", "Bearer not-a-token"))

	other, err := jwt.NewJWTServiceWithSecret("other").GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", "Bearer "+other))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("secret")
	app := newApp(jwtService)

	donor, err := jwtService.GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)
	admin, err := jwtService.GenerateTokenUser("user-2", domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin", "Bearer "+donor))
	assert.Equal(t, fiber.StatusNoContent, get(t, app, "/admin", "Bearer "+admin))
}
