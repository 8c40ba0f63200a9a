package middleware

import (
	authmiddleware "github.com/Conceptual-Machines/chordbook-api/internal/middleware"
	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/gin-gonic/gin"
)

// AnonymousUserID identifies the single local user when AUTH_MODE=none
const AnonymousUserID = "anonymous"

// NoAuth is a pass-through middleware for AUTH_MODE=none (self-hosted, local dev).
// The local user owns everything, so it gets the admin role.
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authmiddleware.SetIdentity(c, authmiddleware.Identity{
			UserID: AnonymousUserID,
			Role:   models.RoleAdmin,
		})
		c.Next()
	}
}
