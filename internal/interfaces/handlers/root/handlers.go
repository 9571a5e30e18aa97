package root

import (
	"context"
	"time"

	"eventplanner-backend/internal/infrastructure/docstore"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the liveness and smoke-test routes.
type Handlers struct {
	Store docstore.Store
}

// Home GET /
func (h *Handlers) Home(c *fiber.Ctx) error {
	return c.SendString("API is running!")
}

// Data GET /api/data returns a static payload.
func (h *Handlers) Data(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": "This is some data!"})
}

// TestDB GET /api/test-db pings the document store. Failures go to the error handler.
func (h *Handlers) TestDB(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		return err
	}
	return response.Success(c, "Connection to the database is successful!", fiber.Map{"backend": h.Store.Backend()}, nil)
}
