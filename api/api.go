package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/paper-insight-api/utils/response"
)

// BodyLimitFactor bounds request bodies at this multiple of the upload limit.
// Oversize uploads below the bound reach the PDF validator.
const BodyLimitFactor = 4

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string, maxUploadMB int) *APIServer {
	tooLarge := fmt.Sprintf("File too large. Maximum size is %dMB.", maxUploadMB)

	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "paper-insight-api",
			BodyLimit:    BodyLimitFactor * maxUploadMB * 1024 * 1024,
			ErrorHandler: newErrorHandler(tooLarge),
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Info("Starting API Server")
	log.Infof("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

// newErrorHandler renders fiber errors with the same body shape as handler errors
func newErrorHandler(tooLargeMessage string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return response.NotFound(c, "Route not found")
			case fiber.StatusRequestEntityTooLarge:
				// same answer the upload validator gives
				return response.BadRequest(c, tooLargeMessage)
			default:
				return response.Error(c, fe.Code, fe.Message)
			}
		}

		log.Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, "", nil)
	}
}
