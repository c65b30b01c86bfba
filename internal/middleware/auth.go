// Package middleware provides the HTTP cross-cutting concerns: bearer
// token authentication, request logging, and request metrics.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/giftwell/backend/internal/auth"
)

const (
	// userIDKey is the gin context key for the authenticated user id.
	userIDKey = "user_id"
	// usernameKey is the gin context key for the authenticated username.
	usernameKey = "username"
)

// UserID extracts the authenticated user id from the request context.
// Returns empty string if the request is unauthenticated.
func UserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	s, _ := id.(string)
	return s
}

// Username extracts the authenticated username from the request context.
func Username(c *gin.Context) string {
	name, _ := c.Get(usernameKey)
	s, _ := name.(string)
	return s
}

// RequireAuth validates the Authorization bearer token and stores the
// caller's identity in the request context. Requests without a valid
// token are rejected with 401.
func RequireAuth(tokens *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}
