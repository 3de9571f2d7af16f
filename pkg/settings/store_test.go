package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modkit-io/modkit/pkg/settings"
	"github.com/modkit-io/modkit/pkg/settings/backend/memory"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	store, err := settings.Open(ctx, backend, "options")
	require.NoError(t, err)

	store.Set("site_title", "My Site")
	store.Set("max_items", 42)
	store.Set("roles", []string{"root", "child"})
	require.NoError(t, store.Sync(ctx))

	// Reopen from the same backend and verify everything survived.
	reloaded, err := settings.Open(ctx, backend, "options")
	require.NoError(t, err)

	assert.Equal(t, "My Site", reloaded.Get("site_title", ""))
	assert.Equal(t, []string{"root", "child"}, reloaded.GetStringSlice("roles"))

	// Numbers come back as float64 after the JSON round-trip.
	assert.Equal(t, float64(42), reloaded.Get("max_items", nil))
}

func TestStoreGetDefault(t *testing.T) {
	ctx := context.Background()
	store, err := settings.Open(ctx, memory.New(), "options")
	require.NoError(t, err)

	assert.Equal(t, "fallback", store.Get("missing", "fallback"))
	assert.Nil(t, store.GetStringSlice("missing"))
	assert.False(t, store.Has("missing"))

	store.Set("present", "value")
	assert.True(t, store.Has("present"))
}

func TestStoreNoOpSetStaysClean(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	store, err := settings.Open(ctx, backend, "options")
	require.NoError(t, err)

	store.Set("key", "value")
	require.NoError(t, store.Sync(ctx))
	assert.Equal(t, 1, backend.SaveCount())

	// Writing the same value again must not dirty the store.
	store.Set("key", "value")
	assert.False(t, store.Dirty())
	require.NoError(t, store.Sync(ctx))
	assert.Equal(t, 1, backend.SaveCount())

	// Same for deep-equal composite values.
	store.Set("list", []string{"a", "b"})
	require.NoError(t, store.Sync(ctx))
	store.Set("list", []string{"a", "b"})
	assert.False(t, store.Dirty())
	require.NoError(t, store.Sync(ctx))
	assert.Equal(t, 2, backend.SaveCount())
}

func TestStoreSyncIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	store, err := settings.Open(ctx, backend, "options")
	require.NoError(t, err)

	store.Set("key", "value")
	require.NoError(t, store.Sync(ctx))
	require.NoError(t, store.Sync(ctx))
	require.NoError(t, store.Sync(ctx))
	assert.Equal(t, 1, backend.SaveCount())
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store, err := settings.Open(ctx, memory.New(), "options")
	require.NoError(t, err)

	err = store.Update("missing", "value")
	require.ErrorIs(t, err, settings.ErrKeyNotFound)

	store.Set("key", "old")
	require.NoError(t, store.Update("key", "new"))
	assert.Equal(t, "new", store.Get("key", ""))
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := settings.Open(ctx, memory.New(), "options")
	require.NoError(t, err)

	assert.False(t, store.Delete("missing"))

	store.Set("key", "value")
	assert.True(t, store.Delete("key"))
	assert.False(t, store.Has("key"))
	assert.True(t, store.Dirty())
}

func TestStoreListHelpers(t *testing.T) {
	ctx := context.Background()
	store, err := settings.Open(ctx, memory.New(), "options")
	require.NoError(t, err)

	// Append creates the list when the key is absent.
	require.NoError(t, store.AppendList("active", "banner"))
	require.NoError(t, store.AppendList("active", "countdown"))
	assert.Equal(t, []string{"banner", "countdown"}, store.GetStringSlice("active"))

	require.NoError(t, store.RemoveFromList("active", "banner"))
	assert.Equal(t, []string{"countdown"}, store.GetStringSlice("active"))

	// Removing from a missing key is a no-op.
	require.NoError(t, store.RemoveFromList("missing", "anything"))

	// Non-list values are rejected.
	store.Set("scalar", "not a list")
	require.ErrorIs(t, store.AppendList("scalar", "x"), settings.ErrWrongType)
	require.ErrorIs(t, store.RemoveFromList("scalar", "x"), settings.ErrWrongType)
}

func TestStoreListHelpersAfterReload(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	store, err := settings.Open(ctx, backend, "options")
	require.NoError(t, err)
	store.Set("active", []string{"banner"})
	require.NoError(t, store.Sync(ctx))

	// After a reload the list is []any; the helpers must still work on it.
	reloaded, err := settings.Open(ctx, backend, "options")
	require.NoError(t, err)
	require.NoError(t, reloaded.AppendList("active", "countdown"))
	require.NoError(t, reloaded.RemoveFromList("active", "banner"))
	assert.Equal(t, []string{"countdown"}, reloaded.GetStringSlice("active"))
}

func TestStoreSnapshotAndKeys(t *testing.T) {
	ctx := context.Background()
	store, err := settings.Open(ctx, memory.New(), "options")
	require.NoError(t, err)

	store.Set("a", 1)
	store.Set("b", 2)

	snap := store.Snapshot()
	assert.Len(t, snap, 2)

	// Mutating the snapshot must not leak into the store.
	snap["a"] = 99
	assert.Equal(t, 1, store.Get("a", 0))

	assert.ElementsMatch(t, []string{"a", "b"}, store.Keys())
}

func TestStoreCloseFlushes(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	store, err := settings.Open(ctx, backend, "options")
	require.NoError(t, err)

	store.Set("key", "value")
	require.NoError(t, store.Close(ctx))
	assert.Equal(t, 1, backend.SaveCount())

	reloaded, err := settings.Open(ctx, backend, "options")
	require.NoError(t, err)
	assert.Equal(t, "value", reloaded.Get("key", ""))
}
