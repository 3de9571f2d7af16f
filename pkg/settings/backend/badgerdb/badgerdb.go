// Package badgerdb provides a BadgerDB-backed settings backend.
//
// Each blob is stored as one JSON-encoded value under a prefixed key, so a
// Save is a single transactional write.
package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/modkit-io/modkit/pkg/settings"
)

const keyPrefix = "blob:"

// Config contains BadgerDB-specific configuration.
type Config struct {
	// Path is the directory for the BadgerDB database files.
	Path string `mapstructure:"path" yaml:"path"`

	// InMemory runs BadgerDB without disk persistence. Used by tests.
	InMemory bool `mapstructure:"in_memory" yaml:"in_memory,omitempty"`
}

// Backend persists settings blobs in BadgerDB.
type Backend struct {
	db *badger.DB
}

var _ settings.Backend = (*Backend)(nil)

// New opens (or creates) the BadgerDB database at cfg.Path.
func New(cfg Config) (*Backend, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("badger backend requires a path")
	}

	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &Backend{db: db}, nil
}

func blobKey(name string) []byte {
	return []byte(keyPrefix + name)
}

// Load returns the blob stored under name.
func (b *Backend) Load(ctx context.Context, name string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data map[string]any
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blobKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &data)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, settings.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to load settings blob %q: %w", name, err)
	}
	return data, nil
}

// Save replaces the blob stored under name.
func (b *Backend) Save(ctx context.Context, name string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode settings blob %q: %w", name, err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(blobKey(name), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to store settings blob %q: %w", name, err)
	}
	return nil
}

// Delete removes the blob stored under name.
func (b *Backend) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(blobKey(name))
	})
	if err != nil {
		return fmt.Errorf("failed to delete settings blob %q: %w", name, err)
	}
	return nil
}

// Close closes the underlying BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}
