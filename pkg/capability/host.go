package capability

import "sync"

// Capability is the contract every instantiated capability class fulfils.
// RegisterHooks is called exactly once per instance during a load pass.
type Capability interface {
	RegisterHooks(host Host) error
}

// BlockCapability marks a root class as acceptable to the host's block
// dependency tree. Block-generation root classes that do not implement it
// are silently skipped during a load pass.
type BlockCapability interface {
	Capability

	// BlockName returns the name the block registers under.
	BlockName() string
}

// Host is the surface the surrounding application exposes to capabilities
// and to the lifecycle manager.
type Host interface {
	// ActivePlugins returns the identifiers of the currently-active sibling
	// plugins. Consumed read-only by requirement checks.
	ActivePlugins() []string

	// SupportsBlockTree reports whether the host runs the block-tree
	// generation. Probed once at manager initialization.
	SupportsBlockTree() bool

	// RegisterBlock hands a block-generation root instance to the host's
	// dependency tree.
	RegisterBlock(block BlockCapability) error
}

// StaticHost is a Host backed by fixed configuration. The daemon uses it
// with values from the config file; tests use it directly.
type StaticHost struct {
	mu      sync.Mutex
	plugins []string
	blocks  []BlockCapability

	// BlockTree selects the block-tree generation when true.
	BlockTree bool
}

var _ Host = (*StaticHost)(nil)

// NewStaticHost creates a host with the given active plugin set.
func NewStaticHost(blockTree bool, plugins ...string) *StaticHost {
	return &StaticHost{BlockTree: blockTree, plugins: plugins}
}

// ActivePlugins returns the configured plugin identifiers.
func (h *StaticHost) ActivePlugins() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.plugins))
	copy(out, h.plugins)
	return out
}

// SupportsBlockTree reports the configured generation.
func (h *StaticHost) SupportsBlockTree() bool {
	return h.BlockTree
}

// RegisterBlock records the block instance.
func (h *StaticHost) RegisterBlock(block BlockCapability) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.blocks = append(h.blocks, block)
	return nil
}

// RegisteredBlocks returns the blocks handed to the host so far.
func (h *StaticHost) RegisteredBlocks() []BlockCapability {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]BlockCapability, len(h.blocks))
	copy(out, h.blocks)
	return out
}
