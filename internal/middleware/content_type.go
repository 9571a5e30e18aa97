package middleware

import (
	"strings"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireJSON rejects POST and PUT requests whose body is not declared as JSON.
func RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
		default:
			return c.Next()
		}
		ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
		if !strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
			return response.Error(c, domain.ErrUnsupportedMedia.Error(), fiber.StatusUnsupportedMediaType, nil)
		}
		return c.Next()
	}
}
