package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys populated by the middleware for downstream handlers.
const (
	ContextUserID   = "auth_user_id"
	ContextUsername = "auth_username"
	ContextToken    = "auth_token"
)

// Middleware rejects requests without a live bearer session and stashes the
// verified claims on the gin context.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "missing authorization token",
				"code":    http.StatusUnauthorized,
			})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := m.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
				"code":    http.StatusUnauthorized,
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// UserID extracts the authenticated user id placed by Middleware.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
