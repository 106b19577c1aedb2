package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// Auth creates an authentication middleware using a static ingest token.
// An empty token disables authentication entirely.
func Auth(token string) fiber.Handler {
	expected := []byte(token)

	return func(c *fiber.Ctx) error {
		if len(expected) == 0 {
			return c.Next()
		}

		// 1. Extract Bearer token
		presented := extractBearerToken(c)
		if presented == "" {
			return domain.ErrUnauthorized
		}

		// 2. Compare in constant time
		// A wrong token and a missing one look the same to the caller
		if subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			return domain.ErrUnauthorized
		}

		return c.Next()
	}
}

// extractBearerToken extracts token from Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
