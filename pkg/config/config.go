// Package config loads and validates the modkit daemon configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/modkit-io/modkit/pkg/api"
	"github.com/modkit-io/modkit/pkg/settings/backend/badgerdb"
	"github.com/modkit-io/modkit/pkg/settings/backend/gormdb"
)

// Config represents the modkit daemon configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (MODKIT_*)
//  2. Configuration file (YAML)
//  3. Default values
//
// Dynamic state (which modules are active, runtime settings) lives in the
// settings store, not here.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`

	// Store configures where the settings store persists its blobs.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// API contains the REST API server configuration.
	API api.APIConfig `mapstructure:"api" yaml:"api"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Host describes the surrounding application the modules run against.
	Host HostConfig `mapstructure:"host" yaml:"host"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error" yaml:"level"`

	// Format specifies the log output format.
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
}

// StoreType selects the settings store backend.
type StoreType string

const (
	StoreTypeBadger   StoreType = "badger"
	StoreTypeSQLite   StoreType = "sqlite"
	StoreTypePostgres StoreType = "postgres"
	StoreTypeMemory   StoreType = "memory"
)

// StoreConfig configures the settings store and its backend.
type StoreConfig struct {
	// Type selects the backend implementation.
	// Valid values: badger, sqlite, postgres, memory
	Type StoreType `mapstructure:"type" validate:"required,oneof=badger sqlite postgres memory" yaml:"type"`

	// Blob is the name of the settings blob this deployment uses.
	Blob string `mapstructure:"blob" validate:"required" yaml:"blob"`

	// LegacyBlobs names blobs from earlier releases to fold in on startup.
	LegacyBlobs []string `mapstructure:"legacy_blobs" yaml:"legacy_blobs,omitempty"`

	// Badger configures the BadgerDB backend (type: badger).
	Badger badgerdb.Config `mapstructure:"badger" yaml:"badger,omitempty"`

	// Database configures the relational backend (type: sqlite or postgres).
	Database gormdb.Config `mapstructure:"database" yaml:"database,omitempty"`
}

// MetricsConfig configures Prometheus metrics exposure.
type MetricsConfig struct {
	// Enabled turns the metrics registry and the /metrics endpoint on.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// HostConfig describes the host application the modules integrate with.
type HostConfig struct {
	// BlockTree selects the block-tree host generation.
	BlockTree bool `mapstructure:"block_tree" yaml:"block_tree"`

	// Plugins lists the active sibling plugin identifiers, consumed by
	// module requirement checks.
	Plugins []string `mapstructure:"plugins" yaml:"plugins,omitempty"`

	// Licensed marks the installation as fully licensed, unlocking premium
	// modules.
	Licensed bool `mapstructure:"licensed" yaml:"licensed"`
}

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		return GetDefaultConfig(), nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to the specified file path in YAML.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: config files may hold database credentials.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variables and config file
// settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the MODKIT_ prefix and underscores.
	// Example: MODKIT_LOGGING_LEVEL=debug
	v.SetEnvPrefix("MODKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error).
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks returns the combined decode hook for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// durationDecodeHook converts strings like "30s", "5m", "1h" to
// time.Duration.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			// YAML often deserializes numbers as float64
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, falling back to the
// current directory when the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "modkit")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "modkit")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	return getConfigDir()
}
