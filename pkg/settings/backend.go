package settings

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by Backend.Load when no blob exists under the
// requested name.
var ErrBlobNotFound = errors.New("settings blob not found")

// Backend is the persistent store underneath a settings Store.
//
// A backend persists whole named blobs: every Save replaces the previous
// value of the blob atomically, so two keys written by a single mutation can
// never be observed torn by another process.
//
// Thread Safety: implementations must be safe for concurrent use from
// multiple goroutines.
type Backend interface {
	// Load returns the blob stored under name.
	// Returns ErrBlobNotFound if the blob has never been saved.
	Load(ctx context.Context, name string) (map[string]any, error)

	// Save replaces the blob stored under name.
	Save(ctx context.Context, name string, data map[string]any) error

	// Delete removes the blob stored under name.
	// Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the backend.
	Close() error
}
