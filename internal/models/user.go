package models

import "time"

// Profile defaults applied at signup when the fields are left empty.
const (
	DefaultAbout  = "Nothing here yet"
	DefaultAvatar = "https://i.pravatar.cc/300"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique handle used for sign-in and mentions.
	Username string `json:"username"`

	// Email is the user's email address (unique). Also accepted as a
	// sign-in identifier.
	Email string `json:"email"`

	// About is a short free-form profile description.
	About string `json:"about"`

	// Avatar is a URL to the user's profile picture.
	Avatar string `json:"avatar"`

	// PasswordHash is the bcrypt digest of the user's password.
	// Never serialized and never logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `json:"updated_at"`
}

// NewUser creates a user with profile defaults filled in. The caller is
// responsible for passing an already-hashed password.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		Username:     username,
		Email:        email,
		About:        DefaultAbout,
		Avatar:       DefaultAvatar,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
