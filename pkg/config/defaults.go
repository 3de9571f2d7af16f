package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Zero values (0, "", false, nil) are replaced with defaults; explicit values
// are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyShutdownTimeoutDefaults(cfg)
	applyStoreDefaults(&cfg.Store)
	cfg.API.ApplyDefaults()
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	cfg.Level = strings.ToLower(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
}

func applyShutdownTimeoutDefaults(cfg *Config) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

// applyStoreDefaults sets settings store defaults.
func applyStoreDefaults(cfg *StoreConfig) {
	if cfg.Type == "" {
		cfg.Type = StoreTypeBadger
	}
	if cfg.Blob == "" {
		cfg.Blob = "modkit"
	}

	dataDir := getDataDir()
	switch cfg.Type {
	case StoreTypeBadger:
		if cfg.Badger.Path == "" {
			cfg.Badger.Path = filepath.Join(dataDir, "settings")
		}
	case StoreTypeSQLite:
		cfg.Database.Type = "sqlite"
		if cfg.Database.SQLite.Path == "" {
			cfg.Database.SQLite.Path = filepath.Join(dataDir, "settings.db")
		}
		cfg.Database.ApplyDefaults()
	case StoreTypePostgres:
		cfg.Database.Type = "postgres"
		cfg.Database.ApplyDefaults()
	}
}

// getDataDir returns the data directory path.
//
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share, falling back to the
// current directory.
func getDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "modkit")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".local", "share", "modkit")
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// Useful for generating sample configuration files, testing, and the
// `modkitd config show --defaults` command.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Store: StoreConfig{
			// Badger needs no external service, so it is the single-node
			// default.
			Type: StoreTypeBadger,
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
