package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthResponse reports process liveness and backend wiring
type HealthResponse struct {
	Status       string `json:"status"`
	AIAvailable  bool   `json:"ai_available"`
	PDFExtractor string `json:"pdf_extractor"`
}

// HandleCheckHealth returns a handler that always answers 200
func HandleCheckHealth(aiAvailable func() bool, extractorName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{
			Status:       "ok",
			AIAvailable:  aiAvailable(),
			PDFExtractor: extractorName,
		})
	}
}
