package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListModules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/modules", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Module{
			{Name: "gallery", Active: true},
			{Name: "countdown", Active: false},
		})
	}))
	defer srv.Close()

	modules, err := New(srv.URL).ListModules()
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "gallery", modules[0].Name)
	assert.True(t, modules[0].Active)
}

func TestEnableModule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/modules/gallery/enable", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Module{Name: "gallery", Active: true})
	}))
	defer srv.Close()

	module, err := New(srv.URL).EnableModule("gallery")
	require.NoError(t, err)
	assert.True(t, module.Active)
}

func TestProblemResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"title":  "Not Found",
			"status": 404,
			"detail": "Module not found",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetModule("missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Contains(t, apiErr.Error(), "Module not found")
}

func TestNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).Health()
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestSetSetting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/settings/site_title", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "My Site", req["value"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Setting{Key: "site_title", Value: "My Site"})
	}))
	defer srv.Close()

	setting, err := New(srv.URL).SetSetting("site_title", "My Site")
	require.NoError(t, err)
	assert.Equal(t, "My Site", setting.Value)
}
