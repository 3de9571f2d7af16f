package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modkit-io/modkit/pkg/capability/lifecycle"
)

// ModuleHandler handles module lifecycle API endpoints.
type ModuleHandler struct {
	manager *lifecycle.Manager
}

// NewModuleHandler creates a new ModuleHandler.
func NewModuleHandler(manager *lifecycle.Manager) *ModuleHandler {
	return &ModuleHandler{manager: manager}
}

// GenerationResponse is the body of GET /api/v1/modules/generation.
type GenerationResponse struct {
	Generation string `json:"generation"`
}

// List handles GET /api/v1/modules.
// Lists every module known to the catalog with its current status.
func (h *ModuleHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, h.manager.List())
}

// Get handles GET /api/v1/modules/{name}.
func (h *ModuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		BadRequest(w, "Module name is required")
		return
	}

	info, err := h.manager.Info(name)
	if err != nil {
		if errors.Is(err, lifecycle.ErrUnknownModule) {
			NotFound(w, "Module not found")
			return
		}
		InternalServerError(w, "Failed to get module")
		return
	}

	WriteJSONOK(w, info)
}

// Enable handles POST /api/v1/modules/{name}/enable.
func (h *ModuleHandler) Enable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		BadRequest(w, "Module name is required")
		return
	}

	if err := h.manager.Enable(r.Context(), name); err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrUnknownModule):
			NotFound(w, "Module not found")
		case errors.Is(err, lifecycle.ErrModuleLocked):
			Forbidden(w, "Module requires a license")
		default:
			InternalServerError(w, "Failed to enable module")
		}
		return
	}

	info, err := h.manager.Info(name)
	if err != nil {
		InternalServerError(w, "Failed to get module")
		return
	}
	WriteJSONOK(w, info)
}

// Disable handles POST /api/v1/modules/{name}/disable.
func (h *ModuleHandler) Disable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		BadRequest(w, "Module name is required")
		return
	}

	if err := h.manager.Disable(r.Context(), name); err != nil {
		if errors.Is(err, lifecycle.ErrUnknownModule) {
			NotFound(w, "Module not found")
			return
		}
		InternalServerError(w, "Failed to disable module")
		return
	}

	// Stale modules may have no catalog entry after a disable; return what
	// we can.
	info, err := h.manager.Info(name)
	if err != nil {
		WriteNoContent(w)
		return
	}
	WriteJSONOK(w, info)
}

// Reset handles POST /api/v1/modules/reset.
// Restores the default active/inactive partition.
func (h *ModuleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.ResetToDefault(r.Context()); err != nil {
		InternalServerError(w, "Failed to reset modules")
		return
	}
	WriteJSONOK(w, h.manager.List())
}

// Categories handles GET /api/v1/modules/categories.
func (h *ModuleHandler) Categories(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, h.manager.Categories())
}

// Generation handles GET /api/v1/modules/generation.
func (h *ModuleHandler) Generation(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, GenerationResponse{Generation: string(h.manager.Generation())})
}
