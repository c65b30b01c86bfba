package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwell/backend/internal/auth"
	"github.com/giftwell/backend/internal/middleware"
	"github.com/giftwell/backend/internal/models"
)

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewJWTManager("middleware-test-secret", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/whoami", middleware.RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  middleware.UserID(c),
			"username": middleware.Username(c),
		})
	})

	get := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("justatoken").Code)
		assert.Equal(t, http.StatusUnauthorized, get("Basic abc123").Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("Bearer not.a.token").Code)
	})

	t.Run("valid token exposes the caller's identity", func(t *testing.T) {
		token, err := tokens.Generate(&models.User{ID: "user-1", Username: "krusty"})
		require.NoError(t, err)

		w := get("Bearer " + token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
		assert.Contains(t, w.Body.String(), `"username":"krusty"`)
	})
}
