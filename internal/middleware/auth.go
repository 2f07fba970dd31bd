package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Authenticator is the part of the session service the middleware needs.
type Authenticator interface {
	IsAuthenticated(ctx context.Context, token string) bool
}

// AdminOnly guards the admin panel routes. The token must be the currently
// issued session token; logout revokes it.
func AdminOnly(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		token := header[len("Bearer "):]
		if !auth.IsAuthenticated(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Next()
	}
}
