// Package api provides the REST control plane for the module registry.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/modkit-io/modkit/internal/logger"
	"github.com/modkit-io/modkit/pkg/api/handlers"
	"github.com/modkit-io/modkit/pkg/capability/lifecycle"
	"github.com/modkit-io/modkit/pkg/metrics"
	"github.com/modkit-io/modkit/pkg/settings"
)

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// Routes:
//   - GET  /health                          - Liveness probe
//   - GET  /health/ready                    - Readiness probe
//   - GET  /api/v1/modules                  - Module list with status
//   - GET  /api/v1/modules/categories       - Category map
//   - GET  /api/v1/modules/generation       - Detected host generation
//   - POST /api/v1/modules/reset            - Restore default partition
//   - GET  /api/v1/modules/{name}           - Single module status
//   - POST /api/v1/modules/{name}/enable    - Enable a module
//   - POST /api/v1/modules/{name}/disable   - Disable a module
//   - GET  /api/v1/settings                 - All settings
//   - GET  /api/v1/settings/{key}           - Single setting
//   - PUT  /api/v1/settings/{key}           - Create or update a setting
//   - DELETE /api/v1/settings/{key}         - Delete a setting
//   - GET  /metrics                         - Prometheus metrics (when enabled)
func NewRouter(cfg APIConfig, manager *lifecycle.Manager, store *settings.Store, version string) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	healthHandler := handlers.NewHealthHandler(manager, version)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	r.Route("/api/v1", func(r chi.Router) {
		moduleHandler := handlers.NewModuleHandler(manager)
		r.Route("/modules", func(r chi.Router) {
			r.Get("/", moduleHandler.List)
			r.Get("/categories", moduleHandler.Categories)
			r.Get("/generation", moduleHandler.Generation)
			r.Post("/reset", moduleHandler.Reset)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", moduleHandler.Get)
				r.Post("/enable", moduleHandler.Enable)
				r.Post("/disable", moduleHandler.Disable)
			})
		})

		settingsHandler := handlers.NewSettingsHandler(store)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.List)
			r.Get("/{key}", settingsHandler.Get)
			r.Put("/{key}", settingsHandler.Set)
			r.Delete("/{key}", settingsHandler.Delete)
		})
	})

	if metrics.IsEnabled() {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger logs requests using the internal logger.
//
// Healthcheck requests are logged at DEBUG level to reduce noise.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		}

		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
