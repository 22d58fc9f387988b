package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

// APIKeyHeader is the header clients present their key in.
const APIKeyHeader = "X-API-Key"

// RequireAPIKey guards a route group with a static API key. When no key is
// configured the guard is a pass-through, matching how deployments without
// an upstream gateway run the service open.
func RequireAPIKey(key string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		presented := c.Get(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "error",
				"error":  "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
