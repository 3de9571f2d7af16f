// Package lifecycle owns the runtime state of the capability registry: which
// capabilities are active, which host generation is in effect, and the load
// passes that instantiate capability classes against the host.
//
// The manager receives its collaborators (catalog, settings store, host)
// explicitly. All mutations persist through the settings store before they
// are visible, and the active/inactive partition stays disjoint.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/modkit-io/modkit/pkg/capability"
	"github.com/modkit-io/modkit/pkg/settings"
)

var (
	// ErrNotInitialized is returned when a method requiring Init runs first.
	ErrNotInitialized = errors.New("lifecycle manager not initialized")

	// ErrUnknownModule is returned for names the catalog does not know.
	ErrUnknownModule = errors.New("unknown module")

	// ErrModuleLocked is returned when enabling a premium module on an
	// unlicensed installation.
	ErrModuleLocked = errors.New("module is locked behind a paid tier")
)

// Settings keys owned by the manager.
const (
	activeModulesKey   = "active_modules"
	inactiveModulesKey = "inactive_modules"
	modulesVersionKey  = "modules_version"
)

// Metrics receives lifecycle events. Implementations must be safe for
// concurrent use.
type Metrics interface {
	// LoadPass records one completed load pass.
	LoadPass(generation string, loaded, failed int)

	// SetActiveModules records the current size of the active set.
	SetActiveModules(n int)
}

// nopMetrics is used when no recorder is wired in.
type nopMetrics struct{}

func (nopMetrics) LoadPass(string, int, int) {}
func (nopMetrics) SetActiveModules(int)      {}

// Option configures a Manager.
type Option func(*Manager)

// WithMetrics wires a metrics recorder into the manager.
func WithMetrics(m Metrics) Option {
	return func(mgr *Manager) {
		if m != nil {
			mgr.metrics = m
		}
	}
}

// WithVersion sets the version marker persisted alongside the module sets.
func WithVersion(v string) Option {
	return func(mgr *Manager) { mgr.version = v }
}

// ModuleInfo is the externally-visible status of one capability.
type ModuleInfo struct {
	Name            string                  `json:"name"`
	Category        string                  `json:"category,omitempty"`
	CategoryTitle   string                  `json:"category_title,omitempty"`
	Generations     []capability.Generation `json:"generations"`
	DefaultActive   bool                    `json:"default_active"`
	Premium         bool                    `json:"premium"`
	Active          bool                    `json:"active"`
	Compatible      bool                    `json:"compatible"`
	RequirementsMet bool                    `json:"requirements_met"`
}

// Manager resolves which capabilities may run and drives their
// instantiation. Safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	catalog *capability.Catalog
	store   *settings.Store
	host    capability.Host
	metrics Metrics
	version string

	generation  capability.Generation
	active      map[string]struct{}
	inactive    map[string]struct{}
	initialized bool
}

// New creates a Manager over the given collaborators. Call Init before
// anything else.
func New(catalog *capability.Catalog, store *settings.Store, host capability.Host, opts ...Option) *Manager {
	m := &Manager{
		catalog:  catalog,
		store:    store,
		host:     host,
		metrics:  nopMetrics{},
		active:   make(map[string]struct{}),
		inactive: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init detects the host generation and loads the active/inactive sets from
// the settings store, seeding from catalog defaults when nothing was ever
// persisted. Re-entrant calls after a successful Init are no-ops.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.generation = capability.GenerationClassic
	if m.host != nil && m.host.SupportsBlockTree() {
		m.generation = capability.GenerationBlocks
	}

	if m.store.Has(activeModulesKey) {
		m.active = toSet(m.store.GetStringSlice(activeModulesKey))
		m.inactive = toSet(m.store.GetStringSlice(inactiveModulesKey))
		// The active side wins when persisted state overlaps.
		for name := range m.active {
			delete(m.inactive, name)
		}
	} else {
		active, inactive := m.defaultPartitionLocked()
		m.active, m.inactive = active, inactive
		if err := m.persistLocked(ctx); err != nil {
			return fmt.Errorf("failed to seed default module state: %w", err)
		}
	}

	m.initialized = true
	m.metrics.SetActiveModules(len(m.active))
	return nil
}

// Generation returns the detected host generation.
func (m *Manager) Generation() capability.Generation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// Initialized reports whether Init has completed.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Enable marks a module active and persists the change. Enabling an
// already-active module succeeds without a write.
func (m *Manager) Enable(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	if _, ok := m.catalog.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	if m.catalog.IsPremium(name) && !m.catalog.Licensed() {
		return fmt.Errorf("%w: %q", ErrModuleLocked, name)
	}
	if _, active := m.active[name]; active {
		return nil
	}

	m.active[name] = struct{}{}
	delete(m.inactive, name)
	if err := m.persistLocked(ctx); err != nil {
		delete(m.active, name)
		m.inactive[name] = struct{}{}
		return err
	}
	m.metrics.SetActiveModules(len(m.active))
	return nil
}

// Disable marks a module inactive and persists the change. Disabling an
// already-inactive module succeeds without a write. Stale names that are
// still in the active set may be disabled even when the catalog no longer
// knows them.
func (m *Manager) Disable(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	if _, inactive := m.inactive[name]; inactive {
		return nil
	}
	_, known := m.catalog.Lookup(name)
	_, active := m.active[name]
	if !known && !active {
		return fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}

	delete(m.active, name)
	m.inactive[name] = struct{}{}
	if err := m.persistLocked(ctx); err != nil {
		delete(m.inactive, name)
		if active {
			m.active[name] = struct{}{}
		}
		return err
	}
	m.metrics.SetActiveModules(len(m.active))
	return nil
}

// ResetToDefault recomputes the active set from the catalog's default-active
// descriptors for the current generation and the inactive set as the
// complement over all known names. The new partition is computed fully in
// memory and persisted in one write; on failure the previous state stays in
// effect.
func (m *Manager) ResetToDefault(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	prevActive, prevInactive := m.active, m.inactive
	m.active, m.inactive = m.defaultPartitionLocked()
	if err := m.persistLocked(ctx); err != nil {
		m.active, m.inactive = prevActive, prevInactive
		return err
	}
	m.metrics.SetActiveModules(len(m.active))
	return nil
}

// defaultPartitionLocked computes the fresh-install partition: default-active
// descriptors compatible with the current generation on the active side,
// everything else known to the catalog on the inactive side.
func (m *Manager) defaultPartitionLocked() (active, inactive map[string]struct{}) {
	active = make(map[string]struct{})
	inactive = make(map[string]struct{})
	for _, d := range m.catalog.All() {
		if d.DefaultActive && d.SupportsGeneration(m.generation) {
			active[d.Name] = struct{}{}
		} else {
			inactive[d.Name] = struct{}{}
		}
	}
	return active, inactive
}

// persistLocked writes both module sets plus the version marker and flushes
// the store. The sets live in one blob, so they are never observed torn. On
// a failed flush the store keys are rolled back so a later unrelated Sync
// cannot leak the aborted state. Caller must hold mu.
func (m *Manager) persistLocked(ctx context.Context) error {
	prevActive := m.store.GetStringSlice(activeModulesKey)
	prevInactive := m.store.GetStringSlice(inactiveModulesKey)
	prevVersion := m.store.Get(modulesVersionKey, nil)

	m.store.Set(activeModulesKey, toSortedSlice(m.active))
	m.store.Set(inactiveModulesKey, toSortedSlice(m.inactive))
	if m.version != "" {
		m.store.Set(modulesVersionKey, m.version)
	}

	if err := m.store.Sync(ctx); err != nil {
		m.store.Set(activeModulesKey, prevActive)
		m.store.Set(inactiveModulesKey, prevInactive)
		if prevVersion != nil {
			m.store.Set(modulesVersionKey, prevVersion)
		}
		return fmt.Errorf("failed to persist module state: %w", err)
	}
	return nil
}

// IsActive reports whether the named module is in the active set.
func (m *Manager) IsActive(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.active[name]
	return ok
}

// IsActiveByClass reports whether the module whose root class matches
// classID for the current generation is active. Returns false when no
// descriptor matches.
func (m *Manager) IsActiveByClass(classID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if classID == "" {
		return false
	}
	for _, d := range m.catalog.All() {
		if d.RootClassID(m.generation) != classID {
			continue
		}
		_, active := m.active[d.Name]
		return active
	}
	return false
}

// Info returns the status of one module.
func (m *Manager) Info(name string) (ModuleInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.catalog.Lookup(name)
	if !ok {
		return ModuleInfo{}, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	return m.infoLocked(d), nil
}

// List returns the status of every module in the catalog, in registration
// order.
func (m *Manager) List() []ModuleInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.catalog.All()
	out := make([]ModuleInfo, 0, len(all))
	for _, d := range all {
		out = append(out, m.infoLocked(d))
	}
	return out
}

func (m *Manager) infoLocked(d *capability.Descriptor) ModuleInfo {
	_, active := m.active[d.Name]
	return ModuleInfo{
		Name:            d.Name,
		Category:        d.Category,
		CategoryTitle:   d.CategoryTitle,
		Generations:     d.Generations,
		DefaultActive:   d.DefaultActive,
		Premium:         m.catalog.IsPremium(d.Name),
		Active:          active,
		Compatible:      d.SupportsGeneration(m.generation),
		RequirementsMet: m.requirementsMetLocked(d),
	}
}

func (m *Manager) requirementsMetLocked(d *capability.Descriptor) bool {
	if d.Requires == nil {
		return true
	}
	if m.host == nil {
		return false
	}
	return d.Requires.Satisfied(m.host.ActivePlugins())
}

// Categories returns the category identifier to display title mapping over
// the whole catalog.
func (m *Manager) Categories() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string)
	for _, d := range m.catalog.All() {
		if d.Category != "" {
			out[d.Category] = d.CategoryTitle
		}
	}
	return out
}

// ActiveDescriptors returns the generation-compatible descriptors whose
// names are in the active set.
func (m *Manager) ActiveDescriptors() []*capability.Descriptor {
	return m.filterDescriptors(func(d *capability.Descriptor, active bool) bool {
		return active
	})
}

// InactiveDescriptors returns the generation-compatible descriptors whose
// names are in the inactive set.
func (m *Manager) InactiveDescriptors() []*capability.Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*capability.Descriptor
	for _, d := range m.catalog.All() {
		if !d.SupportsGeneration(m.generation) {
			continue
		}
		if _, inactive := m.inactive[d.Name]; inactive {
			out = append(out, d)
		}
	}
	return out
}

// DefaultDescriptors returns the generation-compatible descriptors marked
// default-active.
func (m *Manager) DefaultDescriptors() []*capability.Descriptor {
	return m.filterDescriptors(func(d *capability.Descriptor, active bool) bool {
		return d.DefaultActive
	})
}

func (m *Manager) filterDescriptors(keep func(d *capability.Descriptor, active bool) bool) []*capability.Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*capability.Descriptor
	for _, d := range m.catalog.All() {
		if !d.SupportsGeneration(m.generation) {
			continue
		}
		_, active := m.active[d.Name]
		if keep(d, active) {
			out = append(out, d)
		}
	}
	return out
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func toSortedSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
