package builtin

import "github.com/modkit-io/modkit/pkg/capability"

// formStylerModule restyles forms rendered by a sibling form plugin. It only
// loads when one of the supported form plugins is active on the host.
type formStylerModule struct{}

func (m *formStylerModule) RegisterHooks(host capability.Host) error {
	return nil
}

type formStylerBlock struct{}

func (m *formStylerBlock) RegisterHooks(host capability.Host) error {
	return nil
}

func (m *formStylerBlock) BlockName() string {
	return "modkit/form-styler"
}

func formStylerDescriptor() capability.Descriptor {
	return capability.Descriptor{
		Name:          "form_styler",
		Generations:   []capability.Generation{capability.GenerationClassic, capability.GenerationBlocks},
		DefaultActive: false,
		Category:      "integrations",
		CategoryTitle: "Integrations",
		Requires:      capability.ParseRequirement("contact-form-7|wpforms|gravity-forms"),
		Classes: map[capability.Role]capability.ClassRef{
			capability.RoleRoot: {
				ID:  "FormStylerModule",
				New: func() (capability.Capability, error) { return &formStylerModule{}, nil },
			},
			capability.RoleBlockRoot: {
				ID:  "FormStylerBlock",
				New: func() (capability.Capability, error) { return &formStylerBlock{}, nil },
			},
		},
	}
}
