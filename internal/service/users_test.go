package service_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwell/backend/internal/auth"
	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/service"
	"github.com/giftwell/backend/internal/storage/sqlite"
)

func newUserService(t *testing.T) (*service.UserService, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewUserService(store, logger), store
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	users, store := newUserService(t)

	created := models.NewUser("apu", "apu@example.com", "digest")
	require.NoError(t, store.CreateUser(ctx, created))

	t.Run("by id", func(t *testing.T) {
		got, err := users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "apu", got.Username)
	})

	t.Run("by username", func(t *testing.T) {
		got, err := users.GetByUsername(ctx, "apu")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := users.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = users.GetByUsername(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("search by fragment", func(t *testing.T) {
		found, err := users.Search(ctx, "ap")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "apu", found[0].Username)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("patches only the given fields", func(t *testing.T) {
		users, store := newUserService(t)
		user := models.NewUser("moe", "moe@example.com", "digest")
		require.NoError(t, store.CreateUser(ctx, user))

		about := "Bartender"
		updated, err := users.UpdateProfile(ctx, user.ID, service.ProfilePatch{About: &about})
		require.NoError(t, err)
		assert.Equal(t, "Bartender", updated.About)
		assert.Equal(t, "moe", updated.Username)
		assert.Equal(t, "moe@example.com", updated.Email)
	})

	t.Run("rejects a username held by another account", func(t *testing.T) {
		users, store := newUserService(t)
		require.NoError(t, store.CreateUser(ctx, models.NewUser("barney", "barney@example.com", "digest")))
		user := models.NewUser("lenny", "lenny@example.com", "digest")
		require.NoError(t, store.CreateUser(ctx, user))

		taken := "barney"
		_, err := users.UpdateProfile(ctx, user.ID, service.ProfilePatch{Username: &taken})
		assert.ErrorIs(t, err, models.ErrUsernameTaken)
	})

	t.Run("rejects an email held by another account", func(t *testing.T) {
		users, store := newUserService(t)
		require.NoError(t, store.CreateUser(ctx, models.NewUser("barney", "barney@example.com", "digest")))
		user := models.NewUser("lenny", "lenny@example.com", "digest")
		require.NoError(t, store.CreateUser(ctx, user))

		taken := "barney@example.com"
		_, err := users.UpdateProfile(ctx, user.ID, service.ProfilePatch{Email: &taken})
		assert.ErrorIs(t, err, models.ErrEmailTaken)
	})

	t.Run("keeping the current username is not a conflict", func(t *testing.T) {
		users, store := newUserService(t)
		user := models.NewUser("carl", "carl@example.com", "digest")
		require.NoError(t, store.CreateUser(ctx, user))

		same := "carl"
		about := "Plant safety"
		_, err := users.UpdateProfile(ctx, user.ID, service.ProfilePatch{Username: &same, About: &about})
		require.NoError(t, err)
	})

	t.Run("rehashes a changed password", func(t *testing.T) {
		users, store := newUserService(t)
		digest, err := auth.HashPassword("oldpassword")
		require.NoError(t, err)
		user := models.NewUser("edna", "edna@example.com", digest)
		require.NoError(t, store.CreateUser(ctx, user))

		newPassword := "newpassword"
		updated, err := users.UpdateProfile(ctx, user.ID, service.ProfilePatch{Password: &newPassword})
		require.NoError(t, err)
		assert.NotEqual(t, digest, updated.PasswordHash)
		assert.True(t, auth.VerifyPassword("newpassword", updated.PasswordHash))
		assert.False(t, auth.VerifyPassword("oldpassword", updated.PasswordHash))
	})
}
