package response

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return Success(c, "Event found", fiber.Map{"id": "e1"}, nil) })
	app.Get("/created", func(c *fiber.Ctx) error { return SuccessCreated(c, "Event created", nil, nil) })
	app.Get("/err", func(c *fiber.Ctx) error { return Error(c, "Event not found", fiber.StatusNotFound, nil) })
	app.Get("/nil-list", func(c *fiber.Ctx) error {
		var items []string
		return List(c, items)
	})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/ok", 200, `{"status":"success","message":"Event found","data":{"id":"e1"},"metadata":{}}`},
		{"/created", 201, `{"status":"success","message":"Event created","data":null,"metadata":{}}`},
		{"/err", 404, `{"status":"error","error":{"message":"Event not found","statusCode":404,"details":{}}}`},
		{"/nil-list", 200, `[]`},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.code, resp.StatusCode, tt.path)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, tt.body, string(body), tt.path)
	}
}
