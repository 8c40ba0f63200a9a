package middleware

import (
	"net/http"

	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/gin-gonic/gin"
)

// UserRequired ensures an auth middleware established the caller
func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := CurrentIdentity(c); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// EditorRequired ensures the caller may change the song catalogue
func EditorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := CurrentIdentity(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !models.CanEditCatalogue(user.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Editor access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
