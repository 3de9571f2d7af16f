// Package capability defines the capability descriptor model and the
// registration catalog for an extensible host application.
//
// A capability is a unit of host functionality with static metadata (which
// host generations it supports, whether it is active by default, what sibling
// plugins it requires) and one or more implementation classes keyed by role.
// Providers register descriptors into a Catalog at startup; the lifecycle
// manager consumes the catalog to decide what actually runs.
package capability

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Generation identifies a host compatibility generation.
type Generation string

const (
	// GenerationClassic is the legacy host generation.
	GenerationClassic Generation = "classic"

	// GenerationBlocks is the block-tree host generation.
	GenerationBlocks Generation = "blocks"
)

// Role identifies which slot an implementation class fills for a capability.
type Role string

const (
	RoleRoot           Role = "root"
	RoleChild          Role = "child"
	RoleFullWidth      Role = "full_width"
	RoleChildFullWidth Role = "child_full_width"

	// RoleBlockRoot is the single root slot used by the blocks generation.
	RoleBlockRoot Role = "block_root"
)

// classicRoles are the slots instantiated during a classic load pass,
// in a fixed order so passes are deterministic.
var classicRoles = []Role{RoleRoot, RoleChild, RoleFullWidth, RoleChildFullWidth}

// ClassicRoles returns the roles instantiated during a classic load pass,
// in pass order.
func ClassicRoles() []Role {
	out := make([]Role, len(classicRoles))
	copy(out, classicRoles)
	return out
}

// Factory constructs one capability instance. Construction failures are
// reported, not panicked, so a broken provider degrades instead of taking
// the whole load pass down.
type Factory func() (Capability, error)

// ClassRef names one implementation class and how to build it.
type ClassRef struct {
	// ID is the stable class identifier, used for reverse lookups.
	ID string `validate:"required"`

	// New builds an instance. Nil refs are skipped during load passes.
	New Factory `validate:"required"`
}

// Descriptor is the static metadata record for one capability.
// Descriptors are immutable once registered.
type Descriptor struct {
	// Name is the unique capability key.
	Name string `validate:"required"`

	// Generations lists the host generations this capability supports.
	Generations []Generation `validate:"min=1,dive,oneof=classic blocks"`

	// DefaultActive marks the capability as enabled on a fresh install.
	DefaultActive bool

	// Category and CategoryTitle group capabilities for display purposes.
	Category      string
	CategoryTitle string

	// Requires names sibling plugins that must be active before this
	// capability may load. Nil means no requirement.
	Requires *Requirement

	// Classes maps each role to its implementation class. Roles without an
	// entry are skipped during load passes.
	Classes map[Role]ClassRef `validate:"min=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the descriptor is structurally sound.
func (d *Descriptor) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid descriptor %q: %w", d.Name, err)
	}
	if d.Requires != nil {
		if err := d.Requires.Validate(); err != nil {
			return fmt.Errorf("invalid descriptor %q: %w", d.Name, err)
		}
	}
	return nil
}

// SupportsGeneration reports whether the descriptor is compatible with the
// given host generation.
func (d *Descriptor) SupportsGeneration(g Generation) bool {
	for _, gen := range d.Generations {
		if gen == g {
			return true
		}
	}
	return false
}

// Class returns the class reference for role, if any.
func (d *Descriptor) Class(role Role) (ClassRef, bool) {
	ref, ok := d.Classes[role]
	return ref, ok
}

// RootClassID returns the identifier of the root class for the given
// generation, or "" when the slot is empty.
func (d *Descriptor) RootClassID(g Generation) string {
	role := RoleRoot
	if g == GenerationBlocks {
		role = RoleBlockRoot
	}
	return d.Classes[role].ID
}
