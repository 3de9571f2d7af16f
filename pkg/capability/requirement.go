package capability

import (
	"errors"
	"strings"
)

// Requirement names the sibling plugins a capability needs before it may
// load. AnyOf is satisfied when at least one listed plugin is active; AllOf
// when every listed plugin is active. When both are set, both must hold.
//
// A Requirement with neither field set is unsatisfiable: a provider that
// declares a requirement but leaves it empty fails closed rather than open.
type Requirement struct {
	AnyOf []string `mapstructure:"any_of" yaml:"any_of,omitempty"`
	AllOf []string `mapstructure:"all_of" yaml:"all_of,omitempty"`
}

var errEmptyRequirement = errors.New("requirement lists no plugins")

// ParseRequirement builds a Requirement from the compact string form used by
// provider manifests: a pipe-delimited list means "any of these", a plain
// identifier means "exactly this one".
func ParseRequirement(s string) *Requirement {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.Contains(s, "|") {
		parts := strings.Split(s, "|")
		anyOf := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				anyOf = append(anyOf, p)
			}
		}
		return &Requirement{AnyOf: anyOf}
	}
	return &Requirement{AllOf: []string{s}}
}

// Validate checks that the requirement names at least one plugin.
func (r *Requirement) Validate() error {
	if len(r.AnyOf) == 0 && len(r.AllOf) == 0 {
		return errEmptyRequirement
	}
	return nil
}

// Satisfied reports whether the requirement holds against the given set of
// active plugin identifiers. A nil requirement is always satisfied; an empty
// one never is.
func (r *Requirement) Satisfied(activePlugins []string) bool {
	if r == nil {
		return true
	}
	if len(r.AnyOf) == 0 && len(r.AllOf) == 0 {
		return false
	}

	active := make(map[string]struct{}, len(activePlugins))
	for _, p := range activePlugins {
		active[p] = struct{}{}
	}

	if len(r.AnyOf) > 0 {
		found := false
		for _, p := range r.AnyOf {
			if _, ok := active[p]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for _, p := range r.AllOf {
		if _, ok := active[p]; !ok {
			return false
		}
	}
	return true
}
