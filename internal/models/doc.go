// Package models defines the core domain models for the gift registry.
//
// # Ownership
//
// User is the root of ownership: a user owns wishes, wishlists, and the
// offers they have made toward other users' wishes. Relationships are
// carried as ID strings plus optionally populated pointers, never as
// circular struct references.
//
// # Money
//
// All monetary fields (Wish.Price, Wish.Raised, Offer.Amount) are
// decimal.Decimal values with at most two fractional digits. A wish's
// Raised total is defined as the exact sum of the amounts of its live
// offers; the storage layer maintains that equality transactionally.
package models
