package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON returns a 200 OK response with the given body
func JSON(c *fiber.Ctx, body interface{}) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Message: message,
	})
}

// ErrorWithDetails returns an error response carrying the underlying error message
func ErrorWithDetails(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := ErrorResponse{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	return c.Status(statusCode).JSON(body)
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return Error(c, fiber.StatusUnauthorized, message)
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string, err error) error {
	if message == "" {
		message = "Internal server error"
	}
	return ErrorWithDetails(c, fiber.StatusInternalServerError, message, err)
}
