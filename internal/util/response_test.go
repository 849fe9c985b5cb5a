package util

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Validation failed",
			Details: []string{"'name' is required"},
		})
	})

	status, body := call(t, app)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, []any{"'name' is required"}, body["details"])
}

func TestErrorResponse_DefaultsTo500(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, ErrorResponseFormat{Message: "Internal server error"}, errors.New("db down"))
	})

	status, body := call(t, app)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, body, "details")
}

func TestSuccessResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.StatusAccepted, fiber.Map{"job_id": "abc"})
	})

	status, body := call(t, app)

	assert.Equal(t, fiber.StatusAccepted, status)
	assert.Equal(t, map[string]any{"job_id": "abc"}, body)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusMethodNotAllowed, "Method not allowed")
	})

	status, body := call(t, app)
	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
	assert.Equal(t, "Method not allowed", body["error"])

	app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	status, body = call(t, app)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
}
