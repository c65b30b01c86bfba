package models

import "github.com/shopspring/decimal"

// Offer represents a monetary contribution pledge from one user toward
// another user's wish. Offers are all-or-nothing: they are created and
// removed whole, never partially retracted.
type Offer struct {
	// ID is the unique identifier for the offer (UUID format).
	ID string `json:"id"`

	// Amount is the pledged sum. Positive, at most two decimal places.
	Amount decimal.Decimal `json:"amount"`

	// Hidden suppresses the contributor's identity in listings.
	Hidden bool `json:"hidden"`

	// UserID is the contributing user.
	UserID string `json:"user_id"`

	// ItemID is the target wish.
	ItemID string `json:"item_id"`

	// User and Item are populated on reads; the contribution flow
	// always returns offers with both relations filled.
	User *User `json:"user,omitempty"`
	Item *Wish `json:"item,omitempty"`

	// CreatedAt is the Unix timestamp when the offer was made.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64 `json:"updated_at"`
}
