package middleware

import "github.com/gin-gonic/gin"

// Context keys set by the auth middlewares
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// Identity is the caller as established by the active auth mode
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// SetIdentity attaches the caller to the request context
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ContextUserID, id.UserID)
	c.Set(ContextUserEmail, id.Email)
	c.Set(ContextUserRole, id.Role)
}

// CurrentIdentity retrieves the caller from context
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	userID := c.GetString(ContextUserID)
	if userID == "" {
		return Identity{}, false
	}
	return Identity{
		UserID: userID,
		Email:  c.GetString(ContextUserEmail),
		Role:   c.GetString(ContextUserRole),
	}, true
}
