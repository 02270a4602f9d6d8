package middleware

import (
	"net/http"
	"strings"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/token"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// Auth is a Gin middleware that validates the Bearer token on the request and
// attaches the authenticated user ID to the context. Everything below this
// middleware trusts that identity without re-verifying it.
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		userID, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user ID from the Gin context.
// Empty string means the request did not pass the Auth middleware.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		return id.(string)
	}
	return ""
}
