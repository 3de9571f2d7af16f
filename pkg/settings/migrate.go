package settings

import (
	"context"
	"errors"

	"github.com/modkit-io/modkit/internal/logger"
)

// Migration bookkeeping lives inside the blob itself so it survives restarts
// and is inspectable through the normal settings surface.
const (
	// migrationStatusKey maps each legacy blob name to its migration status.
	migrationStatusKey = "_migration"

	// MigrationErrorKey records the last migration failure, if any.
	MigrationErrorKey = "migration_error"
)

// Per-legacy-blob migration states. A blob moves merged→done only after its
// legacy copy was deleted, and is merged at most once: the "merged" marker is
// persisted before deletion is attempted, so a failed delete retries without
// re-merging.
const (
	migrationMerged = "merged"
	migrationDone   = "done"
)

// migrate folds legacy-named blobs into this store.
//
// Existing keys in the current store win over legacy values; nested maps are
// merged recursively. Failures are recorded under MigrationErrorKey instead
// of being returned, so a broken migration never blocks startup and is
// retried on the next open.
func (s *Store) migrate(ctx context.Context, legacyBlobs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allDone := true
	for _, name := range legacyBlobs {
		if !s.migrateOneLocked(ctx, name) {
			allDone = false
		}
	}

	if allDone {
		if _, ok := s.data[MigrationErrorKey]; ok {
			delete(s.data, MigrationErrorKey)
			s.dirty = true
		}
	}

	if err := s.syncLocked(ctx); err != nil {
		logger.Warn("Failed to persist migration state", "blob", s.name, "error", err)
	}
}

// migrateOneLocked advances the migration of one legacy blob as far as it
// can. Reports whether the blob reached the done state. Caller must hold mu.
func (s *Store) migrateOneLocked(ctx context.Context, name string) bool {
	switch s.migrationStatusLocked(name) {
	case migrationDone:
		return true
	case migrationMerged:
		// Merged on an earlier open; only the delete is outstanding.
	default:
		legacy, err := s.backend.Load(ctx, name)
		if err != nil {
			if errors.Is(err, ErrBlobNotFound) {
				// Nothing to migrate.
				s.setMigrationStatusLocked(name, migrationDone)
				return true
			}
			s.recordMigrationErrorLocked(name, err)
			return false
		}

		mergeMissing(s.data, legacy)
		s.setMigrationStatusLocked(name, migrationMerged)
		s.dirty = true

		// The merged marker must be durable before the legacy blob goes
		// away, otherwise a crash here would merge twice on the next open.
		if err := s.syncLocked(ctx); err != nil {
			s.recordMigrationErrorLocked(name, err)
			return false
		}
		logger.Info("Merged legacy settings blob", "blob", s.name, "legacy", name)
	}

	if err := s.backend.Delete(ctx, name); err != nil {
		s.recordMigrationErrorLocked(name, err)
		return false
	}
	s.setMigrationStatusLocked(name, migrationDone)
	return true
}

func (s *Store) migrationStatusLocked(name string) string {
	statuses, ok := s.data[migrationStatusKey].(map[string]any)
	if !ok {
		return ""
	}
	status, _ := statuses[name].(string)
	return status
}

func (s *Store) setMigrationStatusLocked(name, status string) {
	statuses, ok := s.data[migrationStatusKey].(map[string]any)
	if !ok {
		statuses = make(map[string]any)
		s.data[migrationStatusKey] = statuses
	}
	statuses[name] = status
	s.dirty = true
}

func (s *Store) recordMigrationErrorLocked(name string, err error) {
	logger.Warn("Settings migration failed", "blob", s.name, "legacy", name, "error", err)
	s.data[MigrationErrorKey] = err.Error()
	s.dirty = true
}

// mergeMissing copies entries from src into dst for keys dst does not have.
// When both sides hold maps the merge recurses; any other conflict keeps the
// dst value.
func mergeMissing(dst, src map[string]any) {
	for k, v := range src {
		existing, ok := dst[k]
		if !ok {
			dst[k] = v
			continue
		}
		dstMap, dstOK := existing.(map[string]any)
		srcMap, srcOK := v.(map[string]any)
		if dstOK && srcOK {
			mergeMissing(dstMap, srcMap)
		}
	}
}
