package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminOnly chặn request nếu query name/password không khớp admin
func AdminOnly(isAdmin func(name, password string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c.Query("name"), c.Query("password")) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
		return c.Next()
	}
}
