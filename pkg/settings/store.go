// Package settings provides the cached key-value store used by the
// capability control plane.
//
// A Store is a named bag of settings layered over a persistent Backend.
// Reads and writes touch only the in-process copy; Sync flushes to the
// backend when (and only when) something actually changed. The whole bag is
// persisted as a single blob, so related keys written by one mutation reach
// the backend together.
package settings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/modkit-io/modkit/internal/logger"
)

var (
	// ErrKeyNotFound is returned by Update when the key has never been set.
	ErrKeyNotFound = errors.New("setting key not found")

	// ErrWrongType is returned by the list helpers when the stored value is
	// not list-typed.
	ErrWrongType = errors.New("setting value has wrong type")
)

// Store is a cached key-value bag persisted as one blob.
//
// All methods are safe for concurrent use. Writes are buffered in memory
// (write-behind): the in-memory state may be ahead of the persisted blob
// until Sync or Close runs.
type Store struct {
	mu      sync.Mutex
	backend Backend
	name    string
	data    map[string]any
	dirty   bool
}

// Open loads the blob stored under name and returns a Store over it.
// A missing blob yields an empty store.
//
// legacyBlobs names blobs from earlier releases whose contents should be
// merged into this store on first open; see migrate.go for the exact
// semantics.
func Open(ctx context.Context, backend Backend, name string, legacyBlobs ...string) (*Store, error) {
	data, err := backend.Load(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrBlobNotFound) {
			return nil, fmt.Errorf("failed to load settings blob %q: %w", name, err)
		}
		data = make(map[string]any)
	}

	s := &Store{
		backend: backend,
		name:    name,
		data:    data,
	}

	if len(legacyBlobs) > 0 {
		s.migrate(ctx, legacyBlobs)
	}

	return s, nil
}

// Get returns the value stored under key, or def when the key is absent.
func (s *Store) Get(key string, def any) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.data[key]; ok {
		return v
	}
	return def
}

// GetStringSlice returns the value under key coerced to []string.
// Values loaded from a backend round-trip through JSON and come back as
// []any, so both shapes are accepted. Absent or unusable values yield nil.
func (s *Store) GetStringSlice(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return toStringSlice(s.data[key])
}

// Has reports whether key has ever been set.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.data[key]
	return ok
}

// Set stores value under key. The store is marked dirty only when the new
// value differs from the old one by deep equality, so no-op assignments
// never cause a backend write.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLocked(key, value)
}

func (s *Store) setLocked(key string, value any) {
	old, ok := s.data[key]
	if ok && reflect.DeepEqual(old, value) {
		return
	}
	s.data[key] = value
	s.dirty = true
}

// Update replaces the value under an existing key.
// Returns ErrKeyNotFound when the key is absent.
func (s *Store) Update(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	s.setLocked(key, value)
	return nil
}

// Delete removes key from the store. Reports whether the key existed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	s.dirty = true
	return true
}

// AppendList appends value to the list stored under key, creating the list
// when the key is absent. Returns ErrWrongType when the existing value is
// not list-typed.
func (s *Store) AppendList(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.listLocked(key)
	if err != nil {
		return err
	}
	s.data[key] = append(list, value)
	s.dirty = true
	return nil
}

// RemoveFromList removes every element deep-equal to value from the list
// stored under key. A missing key is a no-op. Returns ErrWrongType when the
// existing value is not list-typed.
func (s *Store) RemoveFromList(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	list, err := s.listLocked(key)
	if err != nil {
		return err
	}

	filtered := make([]any, 0, len(list))
	for _, item := range list {
		if !reflect.DeepEqual(item, value) {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) != len(list) {
		s.data[key] = filtered
		s.dirty = true
	}
	return nil
}

// listLocked returns the value under key as []any, coercing []string.
// Caller must hold mu.
func (s *Store) listLocked(key string) ([]any, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	switch list := v.(type) {
	case []any:
		return list, nil
	case []string:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q holds %T, want a list", ErrWrongType, key, v)
	}
}

// Keys returns all set keys. The returned slice is a copy.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns a shallow copy of the current key-value bag.
func (s *Store) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Dirty reports whether there are unflushed changes.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Sync flushes the in-memory state to the backend when dirty.
// Idempotent: a clean store performs no backend write.
func (s *Store) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.syncLocked(ctx)
}

func (s *Store) syncLocked(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	if err := s.backend.Save(ctx, s.name, s.data); err != nil {
		return fmt.Errorf("failed to persist settings blob %q: %w", s.name, err)
	}
	s.dirty = false
	return nil
}

// Close flushes any pending changes. It is the end-of-process safety net for
// callers that mutated the store without a final Sync.
func (s *Store) Close(ctx context.Context) error {
	if err := s.Sync(ctx); err != nil {
		logger.Error("Failed to flush settings on close", "blob", s.name, "error", err)
		return err
	}
	return nil
}

// toStringSlice coerces v into []string. Non-string list elements are
// dropped; non-list values yield nil.
func toStringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}
