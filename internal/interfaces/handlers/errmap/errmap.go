// Package errmap turns domain errors into HTTP error responses.
package errmap

import (
	"errors"
	"net/url"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var statusFor = []struct {
	err  error
	code int
}{
	{domain.ErrUnsupportedMedia, fiber.StatusUnsupportedMediaType},
	{domain.ErrValidation, fiber.StatusBadRequest},
	{domain.ErrInvalidDateFormat, fiber.StatusBadRequest},
	{domain.ErrInvalidID, fiber.StatusBadRequest},
	{domain.ErrDuplicateGuest, fiber.StatusBadRequest},
	{domain.ErrUserNotFound, fiber.StatusNotFound},
	{domain.ErrEventNotFound, fiber.StatusNotFound},
	{domain.ErrGuestNotFound, fiber.StatusNotFound},
	{domain.ErrReminderNotFound, fiber.StatusNotFound},
	{domain.ErrUserExists, fiber.StatusConflict},
	{domain.ErrEventExists, fiber.StatusConflict},
	{domain.ErrLockTimeout, fiber.StatusServiceUnavailable},
}

// Status returns the HTTP status for err, or 0 when err is not a known domain error.
func Status(err error) int {
	for _, m := range statusFor {
		if errors.Is(err, m.err) {
			return m.code
		}
	}
	return 0
}

// Respond writes the error envelope for known domain errors. Anything else is
// returned unchanged for the global error handler (500, logged).
func Respond(c *fiber.Ctx, err error) error {
	if code := Status(err); code != 0 {
		return response.Error(c, err.Error(), code, nil)
	}
	return err
}

// BadBody is the response for a body that is not valid JSON.
func BadBody(c *fiber.Ctx) error {
	return response.Error(c, domain.ErrValidation.Error(), fiber.StatusBadRequest, nil)
}

// Param returns the path-unescaped route parameter name.
func Param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
