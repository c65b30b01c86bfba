package models

import "github.com/shopspring/decimal"

// Wish represents a desired item with a funding target and a running
// total of contributions.
type Wish struct {
	// ID is the unique identifier for the wish (UUID format).
	ID string `json:"id"`

	// Name is the item name.
	Name string `json:"name"`

	// Link is an external URL to the item (shop page, etc.).
	Link string `json:"link"`

	// Image is a URL to the item picture.
	Image string `json:"image"`

	// Price is the funding target. Positive, two decimal places.
	Price decimal.Decimal `json:"price"`

	// Raised is the cumulative amount pledged through live offers.
	// Invariant: Raised equals the exact sum of the amounts of all
	// offers currently attached to this wish.
	Raised decimal.Decimal `json:"raised"`

	// Description is free-form text about the wish.
	Description string `json:"description"`

	// Copied counts how many times this wish was duplicated into other
	// users' profiles.
	Copied int `json:"copied"`

	// OwnerID is the user who created the wish.
	OwnerID string `json:"owner_id"`

	// Owner is populated on reads that request the owner relation.
	Owner *User `json:"owner,omitempty"`

	// CreatedAt is the Unix timestamp when the wish was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64 `json:"updated_at"`
}
