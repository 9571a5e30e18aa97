package health

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	healthsvc "eventplanner-backend/internal/application/health"
	"eventplanner-backend/internal/middleware"
	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const serviceName = "eventplanner-api"

// Handlers holds dependencies for health endpoints. Rdb may be nil when Redis is
// not configured.
type Handlers struct {
	Rdb      *redis.Client
	Store    healthsvc.StorePinger
	AdminKey string
}

// Reset clears health stats in Redis. Requires query key=ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if !middleware.AdminKeyMatches(c.Query("key"), h.AdminKey) {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if h.Rdb == nil {
		return response.Success(c, "Stats are disabled without Redis", fiber.Map{"success": false}, nil)
	}
	ctx := context.Background()
	if err := h.Rdb.Del(ctx, middleware.HealthKeys...).Err(); err != nil {
		return err
	}
	if err := h.Rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err(); err != nil {
		return err
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.Store)
	return c.JSON(fiber.Map{
		"service":      serviceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors returns the last 50 error log entries from Redis, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return c.JSON([]interface{}{})
	}
	entries, err := h.Rdb.LRange(c.UserContext(), middleware.KeyErrorLog, 0, 49).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if _ = json.Unmarshal([]byte(s), &m); m != nil {
			out = append(out, m)
		}
	}
	return c.JSON(out)
}

// Dashboard GET /health renders the HTML status page.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.Store)
	c.Set(fiber.HeaderContentType, "text/html; charset=utf-8")
	return c.SendString(healthsvc.RenderDashboardHTML(result))
}
