package models

// Wishlist represents a named collection of wishes.
type Wishlist struct {
	// ID is the unique identifier for the wishlist (UUID format).
	ID string `json:"id"`

	// Name is the display name of the list.
	Name string `json:"name"`

	// Description is optional free-form text.
	Description string `json:"description,omitempty"`

	// Image is a URL to the list cover picture.
	Image string `json:"image"`

	// OwnerID is the user who created the list.
	OwnerID string `json:"owner_id"`

	// Owner is populated on reads that request the owner relation.
	Owner *User `json:"owner,omitempty"`

	// Items are the wishes linked into this list (many-to-many; the
	// same wish can appear in several lists).
	Items []*Wish `json:"items"`

	// CreatedAt is the Unix timestamp when the list was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64 `json:"updated_at"`
}
