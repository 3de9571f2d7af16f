package capability

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyRegistered is returned when a descriptor name is registered
// twice.
var ErrAlreadyRegistered = errors.New("capability already registered")

// Catalog holds the descriptors announced by capability providers.
//
// Registration happens at startup through an explicit API, so the catalog
// contents are deterministic and inspectable. Accessors return descriptors
// in registration order.
type Catalog struct {
	mu       sync.RWMutex
	byName   map[string]*Descriptor
	ordered  []*Descriptor
	premium  map[string]bool
	licensed bool
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byName:  make(map[string]*Descriptor),
		premium: make(map[string]bool),
	}
}

// Register adds a descriptor to the catalog. The descriptor is validated and
// its name must be unused.
func (c *Catalog) Register(d Descriptor) error {
	return c.register(d, false)
}

// RegisterPremium adds a descriptor that is locked behind a paid tier.
// Premium descriptors are hidden from Premium() once the installation is
// marked licensed, but remain part of All().
func (c *Catalog) RegisterPremium(d Descriptor) error {
	return c.register(d, true)
}

func (c *Catalog) register(d Descriptor, premium bool) error {
	if err := d.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[d.Name]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, d.Name)
	}

	desc := d
	c.byName[d.Name] = &desc
	c.ordered = append(c.ordered, &desc)
	if premium {
		c.premium[d.Name] = true
	}
	return nil
}

// SetLicensed marks the installation as fully licensed. A licensed catalog
// reports no premium (locked) descriptors.
func (c *Catalog) SetLicensed(licensed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.licensed = licensed
}

// Licensed reports whether the installation is marked licensed.
func (c *Catalog) Licensed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.licensed
}

// Registered returns the non-premium descriptors.
func (c *Catalog) Registered() []*Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Descriptor, 0, len(c.ordered))
	for _, d := range c.ordered {
		if !c.premium[d.Name] {
			out = append(out, d)
		}
	}
	return out
}

// Premium returns the descriptors still locked behind a paid tier. Empty
// when the installation is licensed.
func (c *Catalog) Premium() []*Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.licensed {
		return nil
	}
	out := make([]*Descriptor, 0, len(c.premium))
	for _, d := range c.ordered {
		if c.premium[d.Name] {
			out = append(out, d)
		}
	}
	return out
}

// All returns every registered descriptor, premium included.
func (c *Catalog) All() []*Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Descriptor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Lookup returns the descriptor registered under name.
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.byName[name]
	return d, ok
}

// IsPremium reports whether name is locked behind a paid tier, regardless of
// license state.
func (c *Catalog) IsPremium(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.premium[name]
}

// Len returns the number of registered descriptors.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}
