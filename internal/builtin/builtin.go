// Package builtin registers the capability providers compiled into the
// daemon. Each provider contributes one descriptor; the set mirrors what a
// stock installation ships with.
package builtin

import (
	"fmt"

	"github.com/modkit-io/modkit/pkg/capability"
)

// RegisterAll registers every built-in capability into the catalog.
func RegisterAll(catalog *capability.Catalog) error {
	descriptors := []struct {
		desc    capability.Descriptor
		premium bool
	}{
		{desc: galleryDescriptor()},
		{desc: sliderDescriptor()},
		{desc: countdownDescriptor()},
		{desc: formStylerDescriptor()},
		{desc: pricingTableDescriptor(), premium: true},
	}

	for _, entry := range descriptors {
		var err error
		if entry.premium {
			err = catalog.RegisterPremium(entry.desc)
		} else {
			err = catalog.Register(entry.desc)
		}
		if err != nil {
			return fmt.Errorf("register builtin %q: %w", entry.desc.Name, err)
		}
	}
	return nil
}
