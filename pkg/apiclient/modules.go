package apiclient

import "fmt"

// Module represents one capability's status as reported by the daemon.
type Module struct {
	Name            string   `json:"name"`
	Category        string   `json:"category,omitempty"`
	CategoryTitle   string   `json:"category_title,omitempty"`
	Generations     []string `json:"generations"`
	DefaultActive   bool     `json:"default_active"`
	Premium         bool     `json:"premium"`
	Active          bool     `json:"active"`
	Compatible      bool     `json:"compatible"`
	RequirementsMet bool     `json:"requirements_met"`
}

// ListModules returns every module known to the daemon.
func (c *Client) ListModules() ([]Module, error) {
	var modules []Module
	if err := c.get("/api/v1/modules", &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// GetModule returns a module by name.
func (c *Client) GetModule(name string) (*Module, error) {
	var module Module
	if err := c.get(fmt.Sprintf("/api/v1/modules/%s", name), &module); err != nil {
		return nil, err
	}
	return &module, nil
}

// EnableModule enables a module.
func (c *Client) EnableModule(name string) (*Module, error) {
	var module Module
	if err := c.post(fmt.Sprintf("/api/v1/modules/%s/enable", name), nil, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

// DisableModule disables a module.
func (c *Client) DisableModule(name string) (*Module, error) {
	var module Module
	if err := c.post(fmt.Sprintf("/api/v1/modules/%s/disable", name), nil, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

// ResetModules restores the default active/inactive partition and returns
// the resulting module list.
func (c *Client) ResetModules() ([]Module, error) {
	var modules []Module
	if err := c.post("/api/v1/modules/reset", nil, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// ModuleCategories returns the category identifier to display title map.
func (c *Client) ModuleCategories() (map[string]string, error) {
	var categories map[string]string
	if err := c.get("/api/v1/modules/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Generation returns the host generation the daemon detected.
func (c *Client) Generation() (string, error) {
	var resp struct {
		Generation string `json:"generation"`
	}
	if err := c.get("/api/v1/modules/generation", &resp); err != nil {
		return "", err
	}
	return resp.Generation, nil
}
