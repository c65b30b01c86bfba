package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwell/backend/internal/auth"
	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/server"
	"github.com/giftwell/backend/internal/service"
	"github.com/giftwell/backend/internal/storage/sqlite"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tokens, err := auth.NewJWTManager("server-test-secret", time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authenticator := auth.NewAuthenticator(store, tokens, logger)

	srv := server.New(
		authenticator,
		tokens,
		service.NewUserService(store, logger),
		service.NewWishService(store, logger),
		service.NewWishlistService(store, logger),
		service.NewOfferService(store, logger),
		logger,
	)
	return srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func signUp(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestSignUpAndSignIn(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "homer")

	t.Run("duplicate username conflicts", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
			"username": "homer",
			"email":    "homer2@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password is rejected at the edge", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
			"username": "short",
			"email":    "short@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("signin by username", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/signin", "", gin.H{
			"username": "homer",
			"password": "password123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("signin by email", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/signin", "", gin.H{
			"username": "homer@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/signin", "", gin.H{
			"username": "homer",
			"password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown identifier gets the same rejection", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/signin", "", gin.H{
			"username": "nobody",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp struct {
			Error string `json:"error"`
		}
		decodeBody(t, w, &resp)
		assert.Equal(t, models.ErrInvalidCredentials.Error(), resp.Error)
	})
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWishEndpoints(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := signUp(t, router, "lisa")
	otherToken := signUp(t, router, "bart")

	w := doJSON(t, router, http.MethodPost, "/wishes", ownerToken, gin.H{
		"name":  "Saxophone",
		"price": "499.99",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var wish models.Wish
	decodeBody(t, w, &wish)
	require.NotEmpty(t, wish.ID)
	assert.True(t, wish.Raised.IsZero())

	t.Run("get includes the owner", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/wishes/"+wish.ID, otherToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Wish
		decodeBody(t, w, &got)
		require.NotNil(t, got.Owner)
		assert.Equal(t, "lisa", got.Owner.Username)
	})

	t.Run("non-owner cannot edit", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, "/wishes/"+wish.ID, otherToken, gin.H{
			"name":  "Hijacked",
			"price": "1.00",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing wish is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/wishes/missing", otherToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("copy lands in the caller's profile", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/wishes/"+wish.ID+"/copy", otherToken, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var copied models.Wish
		decodeBody(t, w, &copied)
		assert.NotEqual(t, wish.ID, copied.ID)
		assert.Equal(t, "Saxophone", copied.Name)
		assert.True(t, copied.Raised.IsZero())
	})
}

func TestOfferEndpoints(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := signUp(t, router, "marge")
	friendToken := signUp(t, router, "ned")

	w := doJSON(t, router, http.MethodPost, "/wishes", ownerToken, gin.H{
		"name":  "Oven",
		"price": "600.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var wish models.Wish
	decodeBody(t, w, &wish)

	t.Run("contribution raises the wish total", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/offers", friendToken, gin.H{
			"item_id": wish.ID,
			"amount":  "150.00",
		})
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

		var offer models.Offer
		decodeBody(t, w, &offer)
		require.NotNil(t, offer.Item)
		assert.True(t, offer.Amount.Equal(decimal.New(15000, -2)))
		assert.True(t, offer.Item.Raised.Equal(decimal.New(15000, -2)))
	})

	t.Run("self-funding is a bad request", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/offers", ownerToken, gin.H{
			"item_id": wish.ID,
			"amount":  "10.00",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("offer toward a missing wish is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/offers", friendToken, gin.H{
			"item_id": "missing",
			"amount":  "10.00",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("removal returns the wish total to its prior value", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/offers?item_id="+wish.ID, friendToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var offers []models.Offer
		decodeBody(t, w, &offers)
		require.Len(t, offers, 1)

		w = doJSON(t, router, http.MethodDelete, "/offers/"+offers[0].ID, friendToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/wishes/"+wish.ID, friendToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got models.Wish
		decodeBody(t, w, &got)
		assert.True(t, got.Raised.IsZero())
	})
}

func TestProfileEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := signUp(t, router, "moe")
	signUp(t, router, "barney")

	t.Run("me returns the profile without the password hash", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/users/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"moe"`)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("patch updates the profile", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, "/users/me", token, gin.H{
			"about": "Bartender",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var user models.User
		decodeBody(t, w, &user)
		assert.Equal(t, "Bartender", user.About)
	})

	t.Run("taking another user's name conflicts", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, "/users/me", token, gin.H{
			"username": "barney",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("profile lookup by username", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/users/barney", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var user models.User
		decodeBody(t, w, &user)
		assert.Equal(t, "barney", user.Username)
	})

	t.Run("find matches fragments", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/users/find", token, gin.H{
			"query": "barn",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var users []models.User
		decodeBody(t, w, &users)
		require.Len(t, users, 1)
		assert.Equal(t, "barney", users[0].Username)
	})
}
