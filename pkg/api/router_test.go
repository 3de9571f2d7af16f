package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modkit-io/modkit/pkg/api"
	"github.com/modkit-io/modkit/pkg/capability"
	"github.com/modkit-io/modkit/pkg/capability/lifecycle"
	"github.com/modkit-io/modkit/pkg/settings"
	"github.com/modkit-io/modkit/pkg/settings/backend/memory"
)

type nopCapability struct{}

func (nopCapability) RegisterHooks(capability.Host) error { return nil }

func testDescriptor(name string, defaultActive bool) capability.Descriptor {
	return capability.Descriptor{
		Name:          name,
		Generations:   []capability.Generation{capability.GenerationClassic},
		DefaultActive: defaultActive,
		Category:      "test",
		CategoryTitle: "Test Modules",
		Classes: map[capability.Role]capability.ClassRef{
			capability.RoleRoot: {ID: name + "Module", New: func() (capability.Capability, error) {
				return nopCapability{}, nil
			}},
		},
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *lifecycle.Manager, *settings.Store) {
	t.Helper()

	store, err := settings.Open(context.Background(), memory.New(), "modules")
	require.NoError(t, err)

	catalog := capability.NewCatalog()
	require.NoError(t, catalog.Register(testDescriptor("gallery", true)))
	require.NoError(t, catalog.Register(testDescriptor("countdown", false)))

	manager := lifecycle.New(catalog, store, capability.NewStaticHost(false))
	require.NoError(t, manager.Init(context.Background()))

	var cfg api.APIConfig
	cfg.ApplyDefaults()

	srv := httptest.NewServer(api.NewRouter(cfg, manager, store, "test"))
	t.Cleanup(srv.Close)
	return srv, manager, store
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if dst != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, dst any) int {
	t.Helper()

	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	if dst != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func TestHealthEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var health map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/health", &health))
	assert.Equal(t, "healthy", health["status"])

	var ready map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/health/ready", &ready))
	assert.Equal(t, "ready", ready["status"])
	assert.Equal(t, "classic", ready["generation"])
}

func TestModuleEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var list []lifecycle.ModuleInfo
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/modules", &list))
	require.Len(t, list, 2)
	assert.Equal(t, "gallery", list[0].Name)
	assert.True(t, list[0].Active)
	assert.False(t, list[1].Active)

	var info lifecycle.ModuleInfo
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/modules/gallery", &info))
	assert.True(t, info.Active)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/v1/modules/missing", nil))

	var gen map[string]string
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/modules/generation", &gen))
	assert.Equal(t, "classic", gen["generation"])

	var cats map[string]string
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/modules/categories", &cats))
	assert.Equal(t, "Test Modules", cats["test"])
}

func TestModuleEnableDisableReset(t *testing.T) {
	srv, manager, _ := newTestServer(t)

	var info lifecycle.ModuleInfo
	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/v1/modules/countdown/enable", &info))
	assert.True(t, info.Active)
	assert.True(t, manager.IsActive("countdown"))

	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/v1/modules/gallery/disable", &info))
	assert.False(t, info.Active)
	assert.False(t, manager.IsActive("gallery"))

	assert.Equal(t, http.StatusNotFound, postJSON(t, srv.URL+"/api/v1/modules/missing/enable", nil))

	var list []lifecycle.ModuleInfo
	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/v1/modules/reset", &list))
	assert.True(t, manager.IsActive("gallery"))
	assert.False(t, manager.IsActive("countdown"))
}

func TestModuleEnableLockedPremium(t *testing.T) {
	store, err := settings.Open(context.Background(), memory.New(), "modules")
	require.NoError(t, err)

	catalog := capability.NewCatalog()
	require.NoError(t, catalog.RegisterPremium(testDescriptor("pro", false)))

	manager := lifecycle.New(catalog, store, capability.NewStaticHost(false))
	require.NoError(t, manager.Init(context.Background()))

	var cfg api.APIConfig
	cfg.ApplyDefaults()
	srv := httptest.NewServer(api.NewRouter(cfg, manager, store, "test"))
	defer srv.Close()

	assert.Equal(t, http.StatusForbidden, postJSON(t, srv.URL+"/api/v1/modules/pro/enable", nil))
}

func TestSettingsEndpoints(t *testing.T) {
	srv, _, store := newTestServer(t)

	// Set a value.
	body := bytes.NewBufferString(`{"value":"My Site"}`)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/settings/site_title", body)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "My Site", store.Get("site_title", ""))

	// Read it back.
	var setting map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/settings/site_title", &setting))
	assert.Equal(t, "My Site", setting["value"])

	// List includes the module bookkeeping keys plus ours.
	var list []map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/settings", &list))
	keys := make([]string, 0, len(list))
	for _, s := range list {
		keys = append(keys, s["key"].(string))
	}
	assert.Contains(t, keys, "site_title")
	assert.Contains(t, keys, "active_modules")

	// Delete it.
	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/settings/site_title", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/v1/settings/site_title", nil))
}
