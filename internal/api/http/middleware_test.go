package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unifix/complaint-service/internal/observability"
)

func TestRequestTimeoutBoundsHandlerContext(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 30*time.Millisecond)

	var hadDeadline, cancelled bool
	app.Get("/slow", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		_, hadDeadline = ctx.Deadline()
		select {
		case <-ctx.Done():
			cancelled = true
		case <-time.After(500 * time.Millisecond):
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/slow", nil), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, hadDeadline)
	assert.True(t, cancelled)
}

func TestRequestTimeoutDisabledWhenZero(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	var hadDeadline bool
	app.Get("/fast", func(c *fiber.Ctx) error {
		_, hadDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/fast", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, hadDeadline)
}
