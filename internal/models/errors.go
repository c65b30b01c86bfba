package models

import "errors"

// Domain error taxonomy. Services return these (or NotFoundError) and the
// HTTP layer translates them to status codes; nothing below ever carries
// transport concerns.
var (
	// ErrNotFound is the class sentinel for all absent-entity errors.
	// Match with errors.Is; the concrete value is a NotFoundError
	// naming the resource.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken and ErrEmailTaken are signup uniqueness
	// conflicts. Both checks run independently so the more specific
	// reason is reported.
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrInvalidCredentials is the uniform sign-in rejection. It does
	// not distinguish unknown identifier from wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrOwnWish rejects self-funding attempts.
	ErrOwnWish = errors.New("cannot contribute to your own wish")

	// ErrNotOwner rejects mutations by anyone but the owning user.
	ErrNotOwner = errors.New("only the owner can modify this")

	// ErrInvalidAmount rejects non-positive amounts or amounts with
	// more than two decimal places.
	ErrInvalidAmount = errors.New("amount must be positive with at most two decimal places")
)

// NotFoundError reports an absent entity by resource name ("user",
// "wish", "offer", "wishlist"). It matches ErrNotFound via errors.Is.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a NotFoundError for the given resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
