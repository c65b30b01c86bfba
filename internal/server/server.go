// Package server wires the HTTP surface. Handlers stay thin: decode,
// call a service, translate the error taxonomy to a status code.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giftwell/backend/internal/auth"
	"github.com/giftwell/backend/internal/middleware"
	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/service"
)

// Server bundles the services behind the HTTP routes.
type Server struct {
	authenticator *auth.Authenticator
	tokens        *auth.JWTManager
	users         *service.UserService
	wishes        *service.WishService
	wishlists     *service.WishlistService
	offers        *service.OfferService
	logger        *slog.Logger
}

// New creates a Server over the given services.
func New(
	authenticator *auth.Authenticator,
	tokens *auth.JWTManager,
	users *service.UserService,
	wishes *service.WishService,
	wishlists *service.WishlistService,
	offers *service.OfferService,
	logger *slog.Logger,
) *Server {
	return &Server{
		authenticator: authenticator,
		tokens:        tokens,
		users:         users,
		wishes:        wishes,
		wishlists:     wishlists,
		offers:        offers,
		logger:        logger,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/signup", s.handleSignUp)
	r.POST("/signin", s.handleSignIn)

	authed := r.Group("/", middleware.RequireAuth(s.tokens))

	authed.GET("/users/me", s.handleCurrentUser)
	authed.PATCH("/users/me", s.handleUpdateProfile)
	authed.GET("/users/me/wishes", s.handleMyWishes)
	authed.GET("/users/:username", s.handleUserByUsername)
	authed.GET("/users/:username/wishes", s.handleUserWishes)
	authed.POST("/users/find", s.handleFindUsers)

	authed.POST("/wishes", s.handleCreateWish)
	authed.GET("/wishes/last", s.handleLastWishes)
	authed.GET("/wishes/top", s.handleTopWishes)
	authed.GET("/wishes/:id", s.handleGetWish)
	authed.PATCH("/wishes/:id", s.handleUpdateWish)
	authed.DELETE("/wishes/:id", s.handleDeleteWish)
	authed.POST("/wishes/:id/copy", s.handleCopyWish)

	authed.POST("/wishlists", s.handleCreateWishlist)
	authed.GET("/wishlists", s.handleListWishlists)
	authed.GET("/wishlists/:id", s.handleGetWishlist)
	authed.PATCH("/wishlists/:id", s.handleUpdateWishlist)
	authed.DELETE("/wishlists/:id", s.handleDeleteWishlist)

	authed.POST("/offers", s.handleCreateOffer)
	authed.GET("/offers", s.handleListOffers)
	authed.GET("/offers/:id", s.handleGetOffer)
	authed.PATCH("/offers/:id", s.handleUpdateOffer)
	authed.DELETE("/offers/:id", s.handleRemoveOffer)

	return r
}

// respondError maps the domain error taxonomy to HTTP statuses. Anything
// unclassified is a 500 and gets logged with the cause.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUsernameTaken), errors.Is(err, models.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, models.ErrOwnWish), errors.Is(err, models.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
