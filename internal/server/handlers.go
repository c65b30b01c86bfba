package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/giftwell/backend/internal/auth"
	"github.com/giftwell/backend/internal/middleware"
	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/service"
	"github.com/giftwell/backend/internal/storage"
)

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type signUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	About    string `json:"about"`
	Avatar   string `json:"avatar"`
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleSignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.authenticator.SignUp(c.Request.Context(), auth.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		About:    req.About,
		Avatar:   req.Avatar,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.authenticator.SignIn(user)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "access_token": token})
}

func (s *Server) handleSignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The identifier may be a username or an email; rejection is
	// uniform either way.
	user := s.authenticator.ValidateUser(c.Request.Context(), req.Username, req.Password)
	if user == nil {
		s.respondError(c, models.ErrInvalidCredentials)
		return
	}

	token, err := s.authenticator.SignIn(user)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type updateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	About    *string `json:"about"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

type findUsersRequest struct {
	Query string `json:"query" binding:"required"`
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	user, err := s.users.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.ProfilePatch{
		Username: req.Username,
		Email:    req.Email,
		About:    req.About,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleUserByUsername(c *gin.Context) {
	user, err := s.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleFindUsers(c *gin.Context) {
	var req findUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := s.users.Search(c.Request.Context(), req.Query)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleMyWishes(c *gin.Context) {
	wishes, err := s.wishes.List(c.Request.Context(), storage.WishFilter{OwnerID: middleware.UserID(c)})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishes)
}

func (s *Server) handleUserWishes(c *gin.Context) {
	user, err := s.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	wishes, err := s.wishes.List(c.Request.Context(), storage.WishFilter{OwnerID: user.ID})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishes)
}

// ---------------------------------------------------------------------------
// Wishes
// ---------------------------------------------------------------------------

type wishRequest struct {
	Name        string          `json:"name" binding:"required"`
	Link        string          `json:"link"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
}

func (r wishRequest) input() service.WishInput {
	return service.WishInput{
		Name:        r.Name,
		Link:        r.Link,
		Image:       r.Image,
		Price:       r.Price,
		Description: r.Description,
	}
}

func (s *Server) handleCreateWish(c *gin.Context) {
	var req wishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wish, err := s.wishes.Create(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wish)
}

func (s *Server) handleLastWishes(c *gin.Context) {
	wishes, err := s.wishes.Last(c.Request.Context(), 40)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishes)
}

func (s *Server) handleTopWishes(c *gin.Context) {
	wishes, err := s.wishes.Top(c.Request.Context(), 20)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishes)
}

func (s *Server) handleGetWish(c *gin.Context) {
	wish, err := s.wishes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wish)
}

func (s *Server) handleUpdateWish(c *gin.Context) {
	var req wishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wish, err := s.wishes.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.input())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wish)
}

func (s *Server) handleDeleteWish(c *gin.Context) {
	wish, err := s.wishes.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wish)
}

func (s *Server) handleCopyWish(c *gin.Context) {
	wish, err := s.wishes.Copy(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wish)
}

// ---------------------------------------------------------------------------
// Wishlists
// ---------------------------------------------------------------------------

type wishlistRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	ItemIDs     []string `json:"items"`
}

func (r wishlistRequest) input() service.WishlistInput {
	return service.WishlistInput{
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		ItemIDs:     r.ItemIDs,
	}
}

func (s *Server) handleCreateWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := s.wishlists.Create(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (s *Server) handleListWishlists(c *gin.Context) {
	lists, err := s.wishlists.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (s *Server) handleGetWishlist(c *gin.Context) {
	list, err := s.wishlists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleUpdateWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := s.wishlists.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.input())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleDeleteWishlist(c *gin.Context) {
	list, err := s.wishlists.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ---------------------------------------------------------------------------
// Offers
// ---------------------------------------------------------------------------

type createOfferRequest struct {
	ItemID string          `json:"item_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Hidden bool            `json:"hidden"`
}

type updateOfferRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Hidden *bool            `json:"hidden"`
}

func (s *Server) handleCreateOffer(c *gin.Context) {
	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := s.offers.Create(c.Request.Context(), middleware.UserID(c), req.ItemID, req.Amount, req.Hidden)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (s *Server) handleListOffers(c *gin.Context) {
	offers, err := s.offers.List(c.Request.Context(), storage.OfferFilter{
		UserID: c.Query("user_id"),
		ItemID: c.Query("item_id"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (s *Server) handleGetOffer(c *gin.Context) {
	offer, err := s.offers.Get(c.Request.Context(), storage.OfferFilter{ID: c.Param("id")})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (s *Server) handleUpdateOffer(c *gin.Context) {
	var req updateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := s.offers.Update(c.Request.Context(),
		storage.OfferFilter{ID: c.Param("id")},
		service.OfferPatch{Amount: req.Amount, Hidden: req.Hidden},
	)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (s *Server) handleRemoveOffer(c *gin.Context) {
	offer, err := s.offers.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
