package gormdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modkit-io/modkit/pkg/settings"
	"github.com/modkit-io/modkit/pkg/settings/backend/gormdb"
)

func newTestBackend(t *testing.T) *gormdb.Backend {
	t.Helper()

	backend, err := gormdb.New(&gormdb.Config{
		Type:   gormdb.DatabaseTypeSQLite,
		SQLite: gormdb.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return backend
}

func TestGormBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	data := map[string]any{
		"site_title": "My Site",
		"active":     []any{"banner", "countdown"},
		"nested":     map[string]any{"key": "value"},
	}
	require.NoError(t, backend.Save(ctx, "options", data))

	loaded, err := backend.Load(ctx, "options")
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestGormBackendOverwrite(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	require.NoError(t, backend.Save(ctx, "options", map[string]any{"k": "old"}))
	require.NoError(t, backend.Save(ctx, "options", map[string]any{"k": "new"}))

	loaded, err := backend.Load(ctx, "options")
	require.NoError(t, err)
	assert.Equal(t, "new", loaded["k"])
}

func TestGormBackendMissingBlob(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	_, err := backend.Load(ctx, "missing")
	require.ErrorIs(t, err, settings.ErrBlobNotFound)
}

func TestGormBackendDelete(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	require.NoError(t, backend.Save(ctx, "options", map[string]any{"k": "v"}))
	require.NoError(t, backend.Delete(ctx, "options"))

	_, err := backend.Load(ctx, "options")
	require.ErrorIs(t, err, settings.ErrBlobNotFound)

	// Deleting a missing blob is a no-op.
	require.NoError(t, backend.Delete(ctx, "options"))
}

func TestGormConfigValidate(t *testing.T) {
	cfg := &gormdb.Config{Type: gormdb.DatabaseTypeSQLite}
	require.Error(t, cfg.Validate())

	cfg.SQLite.Path = "/tmp/settings.db"
	require.NoError(t, cfg.Validate())

	pg := &gormdb.Config{Type: gormdb.DatabaseTypePostgres}
	pg.ApplyDefaults()
	require.Error(t, pg.Validate())

	pg.Postgres.Host = "localhost"
	pg.Postgres.Database = "modkit"
	pg.Postgres.User = "modkit"
	require.NoError(t, pg.Validate())
	assert.Contains(t, pg.Postgres.DSN(), "sslmode=disable")
}
