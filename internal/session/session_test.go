package session

import (
	"context"
	"testing"
	"time"

	"github.com/01moynul/pedidos-portal/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenDB(context.Background(), "sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestStoreRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	sess := New("token-1")
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-1", loaded.Token())

	sess.SetToken("token-2")
	require.NoError(t, store.Save(ctx, sess))

	loaded, err = store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-2", loaded.Token())
}

func TestStoreDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	sess := New("token")
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewSessionIDsAreUnique(t *testing.T) {
	a, b := New(""), New("")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
}

func TestStorePrune(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	old := New("old")
	require.NoError(t, store.Save(ctx, old))

	store.now = func() time.Time { return base.Add(48 * time.Hour) }
	fresh := New("fresh")
	require.NoError(t, store.Save(ctx, fresh))

	n, err := store.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Load(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Load(ctx, fresh.ID)
	assert.NoError(t, err)
}
