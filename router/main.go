package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/paper-insight-api/handlers"
	auth_handlers "github.com/sahilchouksey/paper-insight-api/handlers/auth"
	paper_handlers "github.com/sahilchouksey/paper-insight-api/handlers/paper"
	"github.com/sahilchouksey/paper-insight-api/services"
	"github.com/sahilchouksey/paper-insight-api/utils/auth"
	"github.com/sahilchouksey/paper-insight-api/utils/middleware"
	"github.com/sahilchouksey/paper-insight-api/utils/pdfvalidation"
)

// Dependencies are the collaborators built once at startup
type Dependencies struct {
	PaperService   *services.PaperService
	JWTManager     *auth.JWTManager
	Blacklist      *auth.BlacklistService
	ExtractorName  string
	UploadDir      string
	MaxUploadMB    int
	AllowedOrigins string
	DisableLogger  bool
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTManager, deps.Blacklist)
	authHandler := auth_handlers.NewAuthHandler(deps.Blacklist)
	paperHandler := paper_handlers.NewPaperHandler(deps.PaperService)

	limits := pdfvalidation.DefaultLimits
	if deps.MaxUploadMB > 0 {
		limits.MaxFileSizeMB = deps.MaxUploadMB
	}
	upload := middleware.PDFUpload(middleware.UploadConfig{
		Dir:    deps.UploadDir,
		Limits: limits,
	})

	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins: deps.AllowedOrigins,
		DisableLogger:  deps.DisableLogger,
	})

	// Health check endpoints (public)
	health := handlers.HandleCheckHealth(deps.PaperService.Available, deps.ExtractorName)
	app.Get("/ping", health)
	app.Get("/health", health)

	// Paper routes at the root, as existing clients call them
	registerPaperRoutes(app, authMiddleware.Required(), upload, paperHandler)

	// API v1 group
	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	registerPaperRoutes(api.Group("/paper"), authMiddleware.Required(), upload, paperHandler)
}

func registerPaperRoutes(r fiber.Router, requireAuth, upload fiber.Handler, h *paper_handlers.PaperHandler) {
	r.Post("/summarize", requireAuth, upload, h.Summarize)
	r.Post("/estimate-marks", requireAuth, upload, h.EstimateMarks)
	r.Post("/analyze", requireAuth, upload, h.Analyze)
}
