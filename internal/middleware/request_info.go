package middleware

import (
	"github.com/gofiber/fiber/v2"
)

func GetIPAddress(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return c.IP()
}

func GetUserAgentFromContext(c *fiber.Ctx) string {
	return c.Get("User-Agent")
}
