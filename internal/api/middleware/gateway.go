package middleware

import (
	"net/http"

	authmiddleware "github.com/Conceptual-Machines/chordbook-api/internal/middleware"
	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/gin-gonic/gin"
)

// GatewayAuth trusts user info from gateway headers (X-User-ID, X-User-Email, X-User-Role).
// This is used when the API runs behind a gateway that has already validated the caller.
//
// When AUTH_MODE=gateway, the API trusts these headers unconditionally.
// This should ONLY be used in the hosted environment with proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			c.Abort()
			return
		}

		role := c.GetHeader("X-User-Role")
		if role == "" {
			role = models.RoleUser
		}

		authmiddleware.SetIdentity(c, authmiddleware.Identity{
			UserID: userID,
			Email:  c.GetHeader("X-User-Email"),
			Role:   role,
		})

		c.Next()
	}
}
