package middleware

import (
	"crypto/subtle"

	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminKeyMatches reports whether key equals the configured admin key. An empty
// configured key never matches.
func AdminKeyMatches(key, adminKey string) bool {
	if adminKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1
}

// RequireAdminKey guards operator endpoints with the ?key= query parameter. An empty
// configured key disables the endpoints entirely.
func RequireAdminKey(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !AdminKeyMatches(c.Query("key"), adminKey) {
			return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}
