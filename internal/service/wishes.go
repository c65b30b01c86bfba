package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/storage"
)

// WishService exposes wish CRUD plus the copy operation. Owner-only
// mutations are enforced here; raised accounting never moves through this
// service.
type WishService struct {
	store  storage.Store
	logger *slog.Logger
}

func NewWishService(store storage.Store, logger *slog.Logger) *WishService {
	return &WishService{store: store, logger: logger}
}

// WishInput carries the fields accepted when creating or editing a wish.
type WishInput struct {
	Name        string
	Link        string
	Image       string
	Price       decimal.Decimal
	Description string
}

// Create adds a new wish owned by ownerID with raised starting at zero.
func (s *WishService) Create(ctx context.Context, ownerID string, in WishInput) (*models.Wish, error) {
	if !validAmount(in.Price) {
		return nil, models.ErrInvalidAmount
	}

	wish := &models.Wish{
		OwnerID:     ownerID,
		Name:        in.Name,
		Link:        in.Link,
		Image:       in.Image,
		Price:       in.Price,
		Raised:      decimal.Zero,
		Description: in.Description,
	}
	if err := s.store.CreateWish(ctx, wish); err != nil {
		return nil, err
	}

	s.logger.Info("wish created", "wish_id", wish.ID, "owner_id", ownerID)
	return wish, nil
}

// Get returns the wish with its owner, or NotFound.
func (s *WishService) Get(ctx context.Context, id string) (*models.Wish, error) {
	wish, err := s.store.GetWish(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if wish == nil {
		return nil, models.NotFound("wish")
	}
	return wish, nil
}

// List returns wishes matching the filter.
func (s *WishService) List(ctx context.Context, filter storage.WishFilter) ([]*models.Wish, error) {
	return s.store.ListWishes(ctx, filter)
}

// Last returns the n most recently created wishes.
func (s *WishService) Last(ctx context.Context, n int) ([]*models.Wish, error) {
	return s.store.ListWishes(ctx, storage.WishFilter{Sort: storage.WishSortNewest, Limit: n})
}

// Top returns the n most copied wishes.
func (s *WishService) Top(ctx context.Context, n int) ([]*models.Wish, error) {
	return s.store.ListWishes(ctx, storage.WishFilter{Sort: storage.WishSortMostCopied, Limit: n})
}

// Update edits a wish. Only the owner may edit.
func (s *WishService) Update(ctx context.Context, userID, wishID string, in WishInput) (*models.Wish, error) {
	wish, err := s.Get(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.OwnerID != userID {
		return nil, models.ErrNotOwner
	}
	if !validAmount(in.Price) {
		return nil, models.ErrInvalidAmount
	}

	wish.Name = in.Name
	wish.Link = in.Link
	wish.Image = in.Image
	wish.Price = in.Price
	wish.Description = in.Description

	if err := s.store.UpdateWish(ctx, wish); err != nil {
		return nil, err
	}
	return wish, nil
}

// Delete removes a wish. Only the owner may delete.
func (s *WishService) Delete(ctx context.Context, userID, wishID string) (*models.Wish, error) {
	wish, err := s.Get(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.OwnerID != userID {
		return nil, models.ErrNotOwner
	}

	if err := s.store.DeleteWish(ctx, wishID); err != nil {
		return nil, err
	}

	s.logger.Info("wish deleted", "wish_id", wishID, "owner_id", userID)
	return wish, nil
}

// Copy duplicates a wish into the calling user's profile. The copy starts
// with zero raised and zero copies; the source's copied counter is
// incremented.
func (s *WishService) Copy(ctx context.Context, userID, wishID string) (*models.Wish, error) {
	source, err := s.Get(ctx, wishID)
	if err != nil {
		return nil, err
	}

	copy := &models.Wish{
		OwnerID:     userID,
		Name:        source.Name,
		Link:        source.Link,
		Image:       source.Image,
		Price:       source.Price,
		Raised:      decimal.Zero,
		Description: source.Description,
	}
	if err := s.store.CreateWish(ctx, copy); err != nil {
		return nil, err
	}

	if err := s.store.IncrementCopied(ctx, wishID); err != nil {
		return nil, err
	}

	s.logger.Info("wish copied", "source_id", wishID, "copy_id", copy.ID, "user_id", userID)
	return copy, nil
}
