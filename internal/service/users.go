package service

import (
	"context"
	"log/slog"

	"github.com/giftwell/backend/internal/auth"
	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/storage"
)

// UserService exposes the user directory: profile reads, profile updates,
// and search. Account creation lives in auth.Authenticator.
type UserService struct {
	store  storage.UserStore
	logger *slog.Logger
}

func NewUserService(store storage.UserStore, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// GetByID returns the user or NotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NotFound("user")
	}
	return user, nil
}

// GetByUsername returns the user or NotFound.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NotFound("user")
	}
	return user, nil
}

// Search finds users by username or email fragment.
func (s *UserService) Search(ctx context.Context, query string) ([]*models.User, error) {
	return s.store.SearchUsers(ctx, query)
}

// ProfilePatch carries the updatable profile fields. Nil means "leave as
// is". Password, when set, is the new plaintext and gets hashed here.
type ProfilePatch struct {
	Username *string
	Email    *string
	About    *string
	Avatar   *string
	Password *string
}

// UpdateProfile patches the user's profile. A changed username or email
// must not collide with another account; a changed password is re-hashed
// before persisting.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil && *patch.Username != user.Username {
		existing, err := s.store.GetUserByUsername(ctx, *patch.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.ErrUsernameTaken
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil && *patch.Email != user.Email {
		existing, err := s.store.GetUserByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.ErrEmailTaken
		}
		user.Email = *patch.Email
	}
	if patch.About != nil {
		user.About = *patch.About
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.Password != nil {
		digest, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = digest
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}
