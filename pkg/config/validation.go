package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against its struct validation tags plus
// the cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch cfg.Store.Type {
	case StoreTypeBadger:
		if !cfg.Store.Badger.InMemory && cfg.Store.Badger.Path == "" {
			return fmt.Errorf("store.badger.path is required for the badger store")
		}
	case StoreTypeSQLite, StoreTypePostgres:
		if err := cfg.Store.Database.Validate(); err != nil {
			return fmt.Errorf("invalid store.database configuration: %w", err)
		}
	case StoreTypeMemory:
		// Nothing to check.
	}

	return nil
}
