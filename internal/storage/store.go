// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/giftwell/backend/internal/models"
)

// Store is the full persistence surface. The SQLite implementation in the
// sqlite subpackage is the only backend today; the split into per-entity
// interfaces lets services depend on just the slice they use.
type Store interface {
	UserStore
	WishStore
	OfferStore
	WishlistStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore holds user directory operations. All Get lookups return
// (nil, nil) when no user matches.
type UserStore interface {
	// CreateUser persists a new user. ID and timestamps are populated
	// by the store when unset.
	CreateUser(ctx context.Context, user *models.User) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateUser rewrites the mutable profile fields (username, email,
	// about, avatar, password hash).
	UpdateUser(ctx context.Context, user *models.User) error

	// SearchUsers finds users whose username or email contains the
	// query string.
	SearchUsers(ctx context.Context, query string) ([]*models.User, error)
}

// WishSort selects the ordering for wish listings.
type WishSort int

const (
	WishSortNewest WishSort = iota
	WishSortMostCopied
)

// WishFilter narrows wish listings. Zero values mean "no constraint".
type WishFilter struct {
	OwnerID string
	Sort    WishSort
	Limit   int
}

// WishStore holds the wish ledger. GetWish returns (nil, nil) when the
// wish does not exist.
type WishStore interface {
	CreateWish(ctx context.Context, wish *models.Wish) error

	// GetWish retrieves a wish, optionally with its owner populated.
	GetWish(ctx context.Context, id string, withOwner bool) (*models.Wish, error)

	ListWishes(ctx context.Context, filter WishFilter) ([]*models.Wish, error)

	// UpdateWish rewrites the editable fields (name, link, image,
	// price, description). The raised total is never touched here; it
	// moves only through the offer transactions and the explicit
	// increment/decrement operations below.
	UpdateWish(ctx context.Context, wish *models.Wish) error

	DeleteWish(ctx context.Context, id string) error

	// IncrementRaised and DecrementRaised adjust the raised total by a
	// relative delta so concurrent adjustments serialize in the
	// database instead of racing through read-modify-write cycles.
	IncrementRaised(ctx context.Context, wishID string, delta decimal.Decimal) error
	DecrementRaised(ctx context.Context, wishID string, delta decimal.Decimal) error

	// IncrementCopied bumps the duplication counter.
	IncrementCopied(ctx context.Context, wishID string) error
}

// OfferFilter narrows offer lookups. Zero values mean "no constraint".
type OfferFilter struct {
	ID     string
	UserID string
	ItemID string
}

// OfferStore holds offers. Reads always populate the contributor and the
// target wish. GetOffer returns (nil, nil) when no offer matches.
type OfferStore interface {
	// CreateOffer persists the offer AND increments the target wish's
	// raised total in a single transaction: either both effects are
	// observed or neither is.
	CreateOffer(ctx context.Context, offer *models.Offer) error

	// SaveOffer rewrites an existing offer's amount and hidden flag.
	// It deliberately does not adjust the wish's raised total.
	SaveOffer(ctx context.Context, offer *models.Offer) error

	GetOffer(ctx context.Context, filter OfferFilter) (*models.Offer, error)
	ListOffers(ctx context.Context, filter OfferFilter) ([]*models.Offer, error)

	// RemoveOffer decrements the target wish's raised total by the
	// offer's amount AND deletes the offer in a single transaction.
	RemoveOffer(ctx context.Context, id string) error
}

// WishlistStore holds wishlists and their wish links.
type WishlistStore interface {
	// CreateWishlist persists the list and links the given wishes.
	CreateWishlist(ctx context.Context, list *models.Wishlist, itemIDs []string) error

	// GetWishlist returns (nil, nil) when the list does not exist. The
	// owner and items are always populated.
	GetWishlist(ctx context.Context, id string) (*models.Wishlist, error)

	ListWishlists(ctx context.Context) ([]*models.Wishlist, error)

	// UpdateWishlist rewrites the list fields; when itemIDs is non-nil
	// the item links are replaced wholesale.
	UpdateWishlist(ctx context.Context, list *models.Wishlist, itemIDs []string) error

	DeleteWishlist(ctx context.Context, id string) error
}
