package service

import (
	"context"
	"log/slog"

	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/storage"
)

// WishlistService exposes wishlist CRUD. Lists have no invariants beyond
// ownership checks on mutation.
type WishlistService struct {
	store  storage.WishlistStore
	logger *slog.Logger
}

func NewWishlistService(store storage.WishlistStore, logger *slog.Logger) *WishlistService {
	return &WishlistService{store: store, logger: logger}
}

// WishlistInput carries the fields accepted when creating or editing a
// wishlist. ItemIDs lists the wishes linked into the list.
type WishlistInput struct {
	Name        string
	Description string
	Image       string
	ItemIDs     []string
}

// Create adds a new wishlist owned by ownerID.
func (s *WishlistService) Create(ctx context.Context, ownerID string, in WishlistInput) (*models.Wishlist, error) {
	list := &models.Wishlist{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	}
	if err := s.store.CreateWishlist(ctx, list, in.ItemIDs); err != nil {
		return nil, err
	}

	s.logger.Info("wishlist created", "wishlist_id", list.ID, "owner_id", ownerID)
	return s.Get(ctx, list.ID)
}

// Get returns the wishlist with owner and items, or NotFound.
func (s *WishlistService) Get(ctx context.Context, id string) (*models.Wishlist, error) {
	list, err := s.store.GetWishlist(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, models.NotFound("wishlist")
	}
	return list, nil
}

// List returns all wishlists.
func (s *WishlistService) List(ctx context.Context) ([]*models.Wishlist, error) {
	return s.store.ListWishlists(ctx)
}

// Update edits a wishlist. Only the owner may edit.
func (s *WishlistService) Update(ctx context.Context, userID, listID string, in WishlistInput) (*models.Wishlist, error) {
	list, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != userID {
		return nil, models.ErrNotOwner
	}

	list.Name = in.Name
	list.Description = in.Description
	list.Image = in.Image

	if err := s.store.UpdateWishlist(ctx, list, in.ItemIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, listID)
}

// Delete removes a wishlist. Only the owner may delete. The linked
// wishes themselves are untouched.
func (s *WishlistService) Delete(ctx context.Context, userID, listID string) (*models.Wishlist, error) {
	list, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != userID {
		return nil, models.ErrNotOwner
	}

	if err := s.store.DeleteWishlist(ctx, listID); err != nil {
		return nil, err
	}

	s.logger.Info("wishlist deleted", "wishlist_id", listID, "owner_id", userID)
	return list, nil
}
