package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Paths the guards redirect to.
const (
	LoginPagePath = "/auth/login-page"
	HomePath      = "/"
)

// RequireUser redirects anonymous requests to the login page. It expects a previous
// middleware to have resolved the session user into c.Locals("userID").
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, ok := c.Locals("userID").(uint); ok && uid != 0 {
			return c.Next()
		}
		return c.Redirect(LoginPagePath, fiber.StatusFound)
	}
}

// RequireAdmin redirects non-admin users to the homepage. It expects c.Locals("isAdmin").
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if admin, ok := c.Locals("isAdmin").(bool); ok && admin {
			return c.Next()
		}
		return c.Redirect(HomePath, fiber.StatusFound)
	}
}
