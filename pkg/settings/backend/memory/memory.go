// Package memory provides an in-process settings backend.
//
// It is used for tests and for ephemeral deployments that do not need
// settings to survive a restart. Blobs round-trip through JSON so the
// backend has the same value-shape semantics as the persistent backends.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/modkit-io/modkit/pkg/settings"
)

// Backend is an in-memory settings backend.
//
// It counts Save calls, which lets tests assert that clean stores perform no
// backend writes.
type Backend struct {
	mu    sync.Mutex
	blobs map[string][]byte
	saves int
}

var _ settings.Backend = (*Backend)(nil)

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{blobs: make(map[string][]byte)}
}

// Load returns the blob stored under name.
func (b *Backend) Load(ctx context.Context, name string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	raw, ok := b.blobs[name]
	b.mu.Unlock()

	if !ok {
		return nil, settings.ErrBlobNotFound
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode settings blob %q: %w", name, err)
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

	b.mu.Lock()
	b.blobs[name] = raw
	b.saves++
	b.mu.Unlock()
	return nil
}

// Delete removes the blob stored under name.
func (b *Backend) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	delete(b.blobs, name)
	b.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory backend.
func (b *Backend) Close() error {
	return nil
}

// SaveCount returns how many Save calls the backend has served.
func (b *Backend) SaveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

// Has reports whether a blob exists under name.
func (b *Backend) Has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.blobs[name]
	return ok
}
