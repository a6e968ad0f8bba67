package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_SaveAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.PendingUpload{ID: "a", Path: "/tmp/a.pdf", DisplayName: "a.pdf", SizeBytes: 1, Target: "Economy"}))
	require.NoError(t, store.Save(ctx, domain.PendingUpload{ID: "b", Path: "/tmp/b.pdf", DisplayName: "b.pdf", SizeBytes: 2, Target: "Health"}))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "/tmp/b.pdf", entries[1].Path)
	assert.Equal(t, int64(2), entries[1].SizeBytes)
}

func TestStore_SaveUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.PendingUpload{ID: "a", Path: "/tmp/a.pdf", DisplayName: "a.pdf", SizeBytes: 1, Target: "Economy"}))
	require.NoError(t, store.Save(ctx, domain.PendingUpload{ID: "a", Path: "/tmp/a.pdf", DisplayName: "a.pdf", SizeBytes: 1, Target: "Health"}))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Health", entries[0].Target)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.PendingUpload{ID: "a", Path: "/tmp/a.pdf", DisplayName: "a.pdf", SizeBytes: 1, Target: "Economy"}))
	require.NoError(t, store.Delete(ctx, "a"))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_DeleteMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), domain.PendingUpload{ID: "a", Path: "/tmp/a.pdf", DisplayName: "a.pdf", SizeBytes: 1, Target: "Economy"}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
}
