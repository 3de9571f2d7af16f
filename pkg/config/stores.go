package config

import (
	"fmt"

	"github.com/modkit-io/modkit/pkg/settings"
	"github.com/modkit-io/modkit/pkg/settings/backend/badgerdb"
	"github.com/modkit-io/modkit/pkg/settings/backend/gormdb"
	"github.com/modkit-io/modkit/pkg/settings/backend/memory"
)

// OpenBackend opens the settings backend selected by the store
// configuration. The caller owns the returned backend and must Close it.
func (c *StoreConfig) OpenBackend() (settings.Backend, error) {
	switch c.Type {
	case StoreTypeBadger:
		backend, err := badgerdb.New(c.Badger)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger settings backend: %w", err)
		}
		return backend, nil

	case StoreTypeSQLite, StoreTypePostgres:
		backend, err := gormdb.New(&c.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open database settings backend: %w", err)
		}
		return backend, nil

	case StoreTypeMemory:
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported store type: %s", c.Type)
	}
}
