package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMessage(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	msg, _ := body["message"].(string)
	return resp.StatusCode, msg
}

func TestErrorHandlerUnknownRoute(t *testing.T) {
	server := NewAPIServer(":0", 10)

	status, msg := decodeMessage(t, server.GetEngine(), "/nope")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Route not found", msg)
}

func TestErrorHandlerFiberError(t *testing.T) {
	server := NewAPIServer(":0", 10)
	server.GetEngine().Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	status, msg := decodeMessage(t, server.GetEngine(), "/teapot")
	assert.Equal(t, fiber.StatusTeapot, status)
	assert.Equal(t, "short and stout", msg)
}

func TestErrorHandlerBodyTooLargeIsBadRequest(t *testing.T) {
	server := NewAPIServer(":0", 10)
	server.GetEngine().Get("/huge", func(c *fiber.Ctx) error {
		return fiber.ErrRequestEntityTooLarge
	})

	status, msg := decodeMessage(t, server.GetEngine(), "/huge")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "File too large. Maximum size is 10MB.", msg)
}

func TestBodyLimitIsMultipleOfUploadLimit(t *testing.T) {
	server := NewAPIServer(":0", 10)
	assert.Equal(t, 40*1024*1024, server.GetEngine().Config().BodyLimit)
}
