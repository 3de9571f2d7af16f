package handlers

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/modkit-io/modkit/pkg/settings"
)

// SettingsHandler handles the settings API endpoints.
type SettingsHandler struct {
	store *settings.Store
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// SetSettingRequest is the request body for PUT /api/v1/settings/{key}.
type SetSettingRequest struct {
	Value any `json:"value"`
}

// SettingResponse is the response body for single-setting endpoints.
type SettingResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// List handles GET /api/v1/settings.
// Returns every stored key-value pair, keys sorted.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()

	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	response := make([]SettingResponse, 0, len(keys))
	for _, k := range keys {
		response = append(response, SettingResponse{Key: k, Value: snapshot[k]})
	}
	WriteJSONOK(w, response)
}

// Get handles GET /api/v1/settings/{key}.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		BadRequest(w, "Setting key is required")
		return
	}

	if !h.store.Has(key) {
		NotFound(w, "Setting not found")
		return
	}
	WriteJSONOK(w, SettingResponse{Key: key, Value: h.store.Get(key, nil)})
}

// Set handles PUT /api/v1/settings/{key}.
// Creates or updates a setting and flushes the store.
func (h *SettingsHandler) Set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		BadRequest(w, "Setting key is required")
		return
	}

	var req SetSettingRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	h.store.Set(key, req.Value)
	if err := h.store.Sync(r.Context()); err != nil {
		InternalServerError(w, "Failed to persist setting")
		return
	}
	WriteJSONOK(w, SettingResponse{Key: key, Value: req.Value})
}

// Delete handles DELETE /api/v1/settings/{key}.
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		BadRequest(w, "Setting key is required")
		return
	}

	if !h.store.Delete(key) {
		NotFound(w, "Setting not found")
		return
	}
	if err := h.store.Sync(r.Context()); err != nil {
		InternalServerError(w, "Failed to persist setting")
		return
	}
	WriteNoContent(w)
}
