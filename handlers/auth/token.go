package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/paper-insight-api/utils/auth"
	"github.com/sahilchouksey/paper-insight-api/utils/middleware"
	"github.com/sahilchouksey/paper-insight-api/utils/response"
)

// AuthHandler handles token lifecycle requests
type AuthHandler struct {
	blacklistService *auth.BlacklistService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(blacklistService *auth.BlacklistService) *AuthHandler {
	return &AuthHandler{
		blacklistService: blacklistService,
	}
}

// Logout revokes the caller's access token until it expires.
// Without Redis there is nothing to revoke against and the call still succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if claims.ID == "" {
		return response.BadRequest(c, "No token ID found")
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := h.blacklistService.RevokeToken(c.UserContext(), claims.ID, expiresAt); err != nil {
		log.Errorf("Auth: Failed to revoke token %s: %v", claims.ID, err)
		return response.InternalServerError(c, "Failed to logout", err)
	}

	return response.JSON(c, fiber.Map{
		"success": true,
		"message": "Successfully logged out",
		"revoked": h.blacklistService.Enabled(),
	})
}
