package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/internal/builtin"
	"github.com/modkit-io/modkit/internal/logger"
	"github.com/modkit-io/modkit/pkg/api"
	"github.com/modkit-io/modkit/pkg/capability"
	"github.com/modkit-io/modkit/pkg/capability/lifecycle"
	"github.com/modkit-io/modkit/pkg/config"
	"github.com/modkit-io/modkit/pkg/metrics"
	prommetrics "github.com/modkit-io/modkit/pkg/metrics/prometheus"
	"github.com/modkit-io/modkit/pkg/settings"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the modkit daemon",
	Long: `Start the modkit daemon with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/modkit/config.yaml.

Examples:
  # Start with default config location
  modkitd start

  # Start with custom config file
  modkitd start --config /etc/modkit/config.yaml

  # Start with environment variable overrides
  MODKIT_LOGGING_LEVEL=debug modkitd start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	// Initialize metrics FIRST so IsEnabled() is accurate when the
	// lifecycle recorder is constructed below.
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled")
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Open the settings backend and the store, merging any legacy blobs.
	backend, err := cfg.Store.OpenBackend()
	if err != nil {
		return fmt.Errorf("failed to open settings backend: %w", err)
	}
	backend = settings.InstrumentBackend(backend, prommetrics.NewBackendMetrics())
	store, err := settings.Open(ctx, backend, cfg.Store.Blob, cfg.Store.LegacyBlobs...)
	if err != nil {
		_ = backend.Close()
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	logger.Info("Settings store opened",
		"type", cfg.Store.Type,
		"blob", cfg.Store.Blob,
		"keys", len(store.Keys()))

	// Build the capability catalog from the compiled-in providers.
	catalog := capability.NewCatalog()
	if err := builtin.RegisterAll(catalog); err != nil {
		return fmt.Errorf("failed to register builtin capabilities: %w", err)
	}
	catalog.SetLicensed(cfg.Host.Licensed)
	logger.Info("Capability catalog ready",
		"capabilities", catalog.Len(),
		"licensed", cfg.Host.Licensed)

	// The daemon host is static, driven entirely by configuration.
	host := capability.NewStaticHost(cfg.Host.BlockTree, cfg.Host.Plugins...)

	manager := lifecycle.New(catalog, store, host,
		lifecycle.WithVersion(Version),
		lifecycle.WithMetrics(prommetrics.NewLifecycleMetrics()),
	)
	if err := manager.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize lifecycle manager: %w", err)
	}
	logger.Info("Lifecycle manager initialized", "generation", manager.Generation())

	if err := manager.LoadModules(ctx); err != nil {
		return fmt.Errorf("module load pass failed: %w", err)
	}

	// Start API server (if enabled - defaults to true)
	serverDone := make(chan error, 1)
	if cfg.API.IsEnabled() {
		apiServer := api.NewServer(cfg.API, manager, store, Version)
		logger.Info("API server enabled", "addr", apiServer.Addr())
		go func() {
			serverDone <- apiServer.Start(ctx)
		}()
	} else {
		logger.Info("API server disabled")
		go func() {
			<-ctx.Done()
			serverDone <- nil
		}()
	}

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Daemon is running. Press Ctrl+C to stop.")

	var runErr error
	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			runErr = err
		}

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			runErr = err
		}
	}

	// Flush pending settings writes before exit. The run context is already
	// cancelled at this point, so use a fresh one bounded by the configured
	// shutdown timeout.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("Settings store close error", "error", err)
		if runErr == nil {
			runErr = err
		}
	}
	if err := backend.Close(); err != nil {
		logger.Error("Settings backend close error", "error", err)
		if runErr == nil {
			runErr = err
		}
	}

	if runErr == nil {
		logger.Info("Daemon stopped gracefully")
	}
	return runErr
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
