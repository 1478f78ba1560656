package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireUser(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if c.Get("X-Session") == "ok" {
			c.Locals("userID", uint(4))
		}
		return c.Next()
	})
	app.Get("/forum", RequireUser(), func(c *fiber.Ctx) error {
		return c.SendString("forum")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/forum", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPagePath, resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/forum", nil)
	req.Header.Set("X-Session", "ok")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(4))
		c.Locals("isAdmin", c.Get("X-Admin") == "true")
		return c.Next()
	})
	app.Get("/feedback/students", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("report")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/feedback/students", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, HomePath, resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/feedback/students", nil)
	req.Header.Set("X-Admin", "true")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMethodOverride(t *testing.T) {
	app := fiber.New()
	app.Use(MethodOverride())
	app.Put("/profile", func(c *fiber.Ctx) error {
		return c.SendString("put")
	})
	app.Post("/profile", func(c *fiber.Ctx) error {
		return c.SendString("post")
	})

	form := url.Values{"_method": {"PUT"}, "username": {"ana"}}
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "put", string(body))
}
