package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giftwell/backend/internal/models"
)

// UserStorage is the slice of the user directory the authenticator needs.
// Lookups return (nil, nil) when no user matches, so existence checks are
// plain branches rather than error handling.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticator validates credentials, registers accounts, and issues
// session tokens. It holds no per-request state of its own.
type Authenticator struct {
	storage UserStorage
	tokens  *JWTManager
	logger  *slog.Logger
}

// NewAuthenticator creates an authenticator backed by the given user
// storage and token manager.
func NewAuthenticator(storage UserStorage, tokens *JWTManager, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		storage: storage,
		tokens:  tokens,
		logger:  logger,
	}
}

// SignUpInput carries the fields accepted at registration. About and
// Avatar are optional; defaults apply when empty.
type SignUpInput struct {
	Username string
	Email    string
	Password string
	About    string
	Avatar   string
}

// ValidateUser resolves the identifier first as a username and then as an
// email, and verifies the password against the stored digest. It returns
// nil for an unknown identifier, a wrong password, or a storage fault:
// authentication produces a uniform no-match signal, never an error.
func (a *Authenticator) ValidateUser(ctx context.Context, identifier, password string) *models.User {
	user, err := a.storage.GetUserByUsername(ctx, identifier)
	if err != nil {
		a.logger.Warn("username lookup failed", "error", err)
		return nil
	}
	if user == nil {
		user, err = a.storage.GetUserByEmail(ctx, identifier)
		if err != nil {
			a.logger.Warn("email lookup failed", "error", err)
			return nil
		}
	}
	if user == nil {
		return nil
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil
	}
	return user
}

// SignUp registers a new account. The username uniqueness check runs
// first, then the email check, so the more specific conflict is reported.
// The password is hashed before anything is persisted; the plaintext is
// never stored or logged.
func (a *Authenticator) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	existing, err := a.storage.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, models.ErrUsernameTaken
	}

	existing, err = a.storage.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	digest, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(in.Username, in.Email, digest)
	if in.About != "" {
		user.About = in.About
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// SignIn issues a session token for an already-validated user. The only
// failure mode is a broken signing setup, which is caught at startup by
// NewJWTManager; per-request errors here are exceptional.
func (a *Authenticator) SignIn(user *models.User) (string, error) {
	return a.tokens.Generate(user)
}
