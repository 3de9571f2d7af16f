package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_NoConfigFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults when config file is missing, got error: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.Logging.Level)
	}
	if cfg.Store.Type != StoreTypeBadger {
		t.Errorf("Expected default store type badger, got %q", cfg.Store.Type)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
  format: json
shutdown_timeout: 10s
store:
  type: memory
  blob: testblob
  legacy_blobs:
    - oldblob
api:
  port: 9090
host:
  block_tree: true
  plugins:
    - contact-form-7
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Store.Type != StoreTypeMemory || cfg.Store.Blob != "testblob" {
		t.Errorf("Unexpected store config: %+v", cfg.Store)
	}
	if len(cfg.Store.LegacyBlobs) != 1 || cfg.Store.LegacyBlobs[0] != "oldblob" {
		t.Errorf("Unexpected legacy blobs: %v", cfg.Store.LegacyBlobs)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("Expected API port 9090, got %d", cfg.API.Port)
	}
	if !cfg.Host.BlockTree || len(cfg.Host.Plugins) != 1 {
		t.Errorf("Unexpected host config: %+v", cfg.Host)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: info
  format: text
store:
  type: memory
  blob: modkit
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MODKIT_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected env var to override log level, got %q", cfg.Logging.Level)
	}
}

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected default config to pass validation, got: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "verbose"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidAPIPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.API.Port = 70000

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
}

func TestValidate_MissingBadgerPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Store.Badger.Path = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for missing badger path")
	}
}

func TestValidate_SQLiteStore(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Store.Type = StoreTypeSQLite
	cfg.Store.Database.Type = "sqlite"
	cfg.Store.Database.SQLite.Path = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for missing sqlite path")
	}

	cfg.Store.Database.SQLite.Path = "/tmp/settings.db"
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid sqlite store config, got: %v", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Logging.Level = "warn"
	cfg.Store.Type = StoreTypeMemory

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("Expected warn log level after round trip, got %q", loaded.Logging.Level)
	}
	if loaded.Store.Type != StoreTypeMemory {
		t.Errorf("Expected memory store after round trip, got %q", loaded.Store.Type)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestOpenBackend_Memory(t *testing.T) {
	cfg := StoreConfig{Type: StoreTypeMemory, Blob: "modkit"}

	backend, err := cfg.OpenBackend()
	if err != nil {
		t.Fatalf("OpenBackend failed: %v", err)
	}
	defer backend.Close()
}

func TestOpenBackend_Unsupported(t *testing.T) {
	cfg := StoreConfig{Type: "etcd", Blob: "modkit"}

	if _, err := cfg.OpenBackend(); err == nil {
		t.Fatal("Expected error for unsupported store type")
	}
}
