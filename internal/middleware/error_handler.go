package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"eventplanner-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const errorLogSize = 50

// ErrorHandler is the global error handler without an error log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return NewErrorHandler(nil)(c, err)
}

// NewErrorHandler answers errors no handler mapped. Server errors carry the error
// text, are logged and, when rdb is set, pushed onto the error log read by
// /health/errors (newest first, capped at 50).
func NewErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("trace_id", GetTraceID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("Unhandled request error")
			if rdb != nil {
				pushErrorLog(rdb, c, message)
			}
		}
		return response.Error(c, message, code, nil)
	}
}

func pushErrorLog(rdb *redis.Client, c *fiber.Ctx, message string) {
	entry, _ := json.Marshal(map[string]interface{}{
		"time":     time.Now().UTC(),
		"method":   c.Method(),
		"path":     c.Path(),
		"message":  message,
		"trace_id": GetTraceID(c),
	})
	ctx := context.Background()
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, KeyErrorLog, entry)
		p.LTrim(ctx, KeyErrorLog, 0, errorLogSize-1)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Writing error log failed")
	}
}
