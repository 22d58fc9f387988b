package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// CorrelationHeader is the inbound/outbound correlation ID header.
const CorrelationHeader = "X-Correlation-ID"

// CorrelationLocal is the fiber locals key holding the request's ID.
const CorrelationLocal = "correlation_id"

// Correlation honors an inbound correlation ID or generates one, stores it
// in locals for handlers and logs, and echoes it on the response.
func Correlation() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(CorrelationHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Locals(CorrelationLocal, id)
		c.Set(CorrelationHeader, id)
		return c.Next()
	}
}
