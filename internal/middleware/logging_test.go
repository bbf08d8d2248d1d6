package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxHandler_AddsContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&ctxHandler{slog.NewTextHandler(&buf, nil)})

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = WithUserID(ctx, 7)
	logger.With("component", "test").InfoContext(ctx, "hello")

	out := buf.String()
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "user_id=7")
	assert.Contains(t, out, "component=test")
}

func TestContextMiddleware_PropagatesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(ContextMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		rid, _ := c.UserContext().Value(RequestIDKey).(string)
		return c.SendString(rid)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(resp.Body)
	assert.Equal(t, "abc-123", body.String())
}

func TestStructuredLogger_StatusAndLevel(t *testing.T) {
	tests := []struct {
		name          string
		handler       fiber.Handler
		expectedLog   []string
		unexpectedLog string
	}{
		{
			name:        "Success",
			handler:     func(c *fiber.Ctx) error { return c.SendString("ok") },
			expectedLog: []string{"level=INFO", "status=200", `msg="request processed"`},
		},
		{
			name:          "Not found error",
			handler:       func(c *fiber.Ctx) error { return models.NewNotFoundError("group", "nope") },
			expectedLog:   []string{"level=WARN", "status=404", `msg="request rejected"`},
			unexpectedLog: "level=ERROR",
		},
		{
			name:          "Fiber error",
			handler:       func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad") },
			expectedLog:   []string{"level=WARN", "status=400"},
			unexpectedLog: "level=ERROR",
		},
		{
			name:        "Internal error",
			handler:     func(c *fiber.Ctx) error { return models.NewInternalError(errors.New("boom")) },
			expectedLog: []string{"level=ERROR", "status=500", `msg="request failed"`},
		},
	}

	original := Logger
	t.Cleanup(func() { Logger = original })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Logger = slog.New(&ctxHandler{slog.NewTextHandler(&buf, nil)})

			app := fiber.New()
			app.Use(StructuredLogger())
			app.Get("/", tt.handler)

			_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			out := buf.String()
			for _, want := range tt.expectedLog {
				assert.Contains(t, out, want)
			}
			if tt.unexpectedLog != "" {
				assert.NotContains(t, out, tt.unexpectedLog)
			}
		})
	}
}
