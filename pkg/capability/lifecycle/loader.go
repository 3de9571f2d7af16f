package lifecycle

import (
	"context"
	"fmt"

	"github.com/modkit-io/modkit/internal/logger"
	"github.com/modkit-io/modkit/pkg/capability"
)

// LoadModules runs one load pass: every active, generation-compatible,
// requirement-satisfied descriptor has its classes instantiated and their
// hooks registered against the host.
//
// Failures are isolated per descriptor: a factory error, hook error, or
// panic is logged with descriptor context and the pass moves on. One broken
// capability must never take the host down.
func (m *Manager) LoadModules(ctx context.Context) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	generation := m.generation
	host := m.host

	var candidates []*capability.Descriptor
	for _, d := range m.catalog.All() {
		if !d.SupportsGeneration(generation) {
			continue
		}
		if _, active := m.active[d.Name]; !active {
			continue
		}
		candidates = append(candidates, d)
	}
	m.mu.Unlock()

	var activePlugins []string
	if host != nil {
		activePlugins = host.ActivePlugins()
	}

	loaded, failed := 0, 0
	for _, d := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Requires.Satisfied(activePlugins) {
			logger.Debug("Skipping module with unmet requirements", "module", d.Name)
			continue
		}
		if err := loadDescriptor(d, generation, host); err != nil {
			logger.Error("Failed to load module", "module", d.Name, "error", err)
			failed++
			continue
		}
		loaded++
	}

	logger.Info("Module load pass complete",
		"generation", string(generation), "loaded", loaded, "failed", failed)
	m.metrics.LoadPass(string(generation), loaded, failed)
	return nil
}

// loadDescriptor instantiates every filled class role of one descriptor and
// registers its hooks. Panics from provider code are converted to errors.
func loadDescriptor(d *capability.Descriptor, generation capability.Generation, host capability.Host) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("module %q panicked: %v", d.Name, r)
		}
	}()

	if generation == capability.GenerationBlocks {
		return loadBlockRoot(d, host)
	}
	return loadClassicRoles(d, host)
}

func loadClassicRoles(d *capability.Descriptor, host capability.Host) error {
	for _, role := range capability.ClassicRoles() {
		ref, ok := d.Class(role)
		if !ok || ref.New == nil {
			continue
		}
		inst, err := ref.New()
		if err != nil {
			return fmt.Errorf("class %q (%s): %w", ref.ID, role, err)
		}
		if err := inst.RegisterHooks(host); err != nil {
			return fmt.Errorf("class %q (%s) hook registration: %w", ref.ID, role, err)
		}
	}
	return nil
}

func loadBlockRoot(d *capability.Descriptor, host capability.Host) error {
	ref, ok := d.Class(capability.RoleBlockRoot)
	if !ok || ref.New == nil {
		return nil
	}
	inst, err := ref.New()
	if err != nil {
		return fmt.Errorf("class %q (%s): %w", ref.ID, capability.RoleBlockRoot, err)
	}

	block, ok := inst.(capability.BlockCapability)
	if !ok {
		// Not block-tree material: skip quietly rather than fail the module.
		logger.Debug("Block root does not implement the block contract, skipping",
			"module", d.Name, "class", ref.ID)
		return nil
	}
	if host != nil {
		if err := host.RegisterBlock(block); err != nil {
			return fmt.Errorf("class %q block registration: %w", ref.ID, err)
		}
	}
	if err := block.RegisterHooks(host); err != nil {
		return fmt.Errorf("class %q hook registration: %w", ref.ID, err)
	}
	return nil
}
