package middleware

import (
	"github.com/Conceptual-Machines/chordbook-api/internal/config"
	authmiddleware "github.com/Conceptual-Machines/chordbook-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Authenticate picks the auth middleware for the configured AUTH_MODE
func Authenticate(cfg *config.Config) gin.HandlerFunc {
	switch {
	case cfg.IsJWTMode():
		return authmiddleware.JWTAuth(cfg)
	case cfg.IsGatewayMode():
		return GatewayAuth()
	default:
		return NoAuth()
	}
}
