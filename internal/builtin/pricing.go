package builtin

import "github.com/modkit-io/modkit/pkg/capability"

// pricingTableModule ships with the premium tier and stays locked until a
// license is applied.
type pricingTableModule struct{}

func (m *pricingTableModule) RegisterHooks(host capability.Host) error {
	return nil
}

type pricingTableRow struct{}

func (m *pricingTableRow) RegisterHooks(host capability.Host) error {
	return nil
}

type pricingTableBlock struct{}

func (m *pricingTableBlock) RegisterHooks(host capability.Host) error {
	return nil
}

func (m *pricingTableBlock) BlockName() string {
	return "modkit/pricing-table"
}

func pricingTableDescriptor() capability.Descriptor {
	return capability.Descriptor{
		Name:          "pricing_table",
		Generations:   []capability.Generation{capability.GenerationClassic, capability.GenerationBlocks},
		DefaultActive: false,
		Category:      "commerce",
		CategoryTitle: "Commerce",
		Classes: map[capability.Role]capability.ClassRef{
			capability.RoleRoot: {
				ID:  "PricingTableModule",
				New: func() (capability.Capability, error) { return &pricingTableModule{}, nil },
			},
			capability.RoleChild: {
				ID:  "PricingTableRow",
				New: func() (capability.Capability, error) { return &pricingTableRow{}, nil },
			},
			capability.RoleBlockRoot: {
				ID:  "PricingTableBlock",
				New: func() (capability.Capability, error) { return &pricingTableBlock{}, nil },
			},
		},
	}
}
