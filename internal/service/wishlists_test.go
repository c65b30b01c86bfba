package service_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/service"
	"github.com/giftwell/backend/internal/storage/sqlite"
)

type wishlistFixture struct {
	lists *service.WishlistService
	owner *models.User
	other *models.User
	wish  *models.Wish
}

func newWishlistFixture(t *testing.T) *wishlistFixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	owner := models.NewUser("owner", "owner@example.com", "digest")
	require.NoError(t, store.CreateUser(ctx, owner))
	other := models.NewUser("other", "other@example.com", "digest")
	require.NoError(t, store.CreateUser(ctx, other))

	wish := &models.Wish{Name: "Skates", OwnerID: owner.ID, Price: amount(t, "60.00")}
	require.NoError(t, store.CreateWish(ctx, wish))

	return &wishlistFixture{
		lists: service.NewWishlistService(store, logger),
		owner: owner,
		other: other,
		wish:  wish,
	}
}

func TestWishlistCreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := newWishlistFixture(t)

	list, err := f.lists.Create(ctx, f.owner.ID, service.WishlistInput{
		Name:    "Birthday",
		ItemIDs: []string{f.wish.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Birthday", list.Name)
	require.NotNil(t, list.Owner)
	assert.Equal(t, "owner", list.Owner.Username)
	require.Len(t, list.Items, 1)
	assert.Equal(t, f.wish.ID, list.Items[0].ID)

	_, err = f.lists.Get(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWishlistOwnerChecks(t *testing.T) {
	ctx := context.Background()
	f := newWishlistFixture(t)

	list, err := f.lists.Create(ctx, f.owner.ID, service.WishlistInput{Name: "Mine"})
	require.NoError(t, err)

	_, err = f.lists.Update(ctx, f.other.ID, list.ID, service.WishlistInput{Name: "Stolen"})
	assert.ErrorIs(t, err, models.ErrNotOwner)

	_, err = f.lists.Delete(ctx, f.other.ID, list.ID)
	assert.ErrorIs(t, err, models.ErrNotOwner)

	updated, err := f.lists.Update(ctx, f.owner.ID, list.ID, service.WishlistInput{
		Name:    "Still mine",
		ItemIDs: []string{f.wish.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Still mine", updated.Name)
	assert.Len(t, updated.Items, 1)

	_, err = f.lists.Delete(ctx, f.owner.ID, list.ID)
	require.NoError(t, err)

	_, err = f.lists.Get(ctx, list.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
