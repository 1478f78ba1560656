package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverride lets HTML forms issue PUT, PATCH and DELETE requests through a POST
// carrying a `_method` form field or query parameter.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		override := c.Query("_method")
		if override == "" {
			override = c.FormValue("_method")
		}

		switch strings.ToUpper(strings.TrimSpace(override)) {
		case fiber.MethodPut:
			c.Method(fiber.MethodPut)
		case fiber.MethodPatch:
			c.Method(fiber.MethodPatch)
		case fiber.MethodDelete:
			c.Method(fiber.MethodDelete)
		}
		return c.Next()
	}
}
