package builtin

import "github.com/modkit-io/modkit/pkg/capability"

// countdownModule is classic-only: the block generation never shipped a
// countdown, so it is filtered out of blocks hosts at seed time.
type countdownModule struct{}

func (m *countdownModule) RegisterHooks(host capability.Host) error {
	return nil
}

func countdownDescriptor() capability.Descriptor {
	return capability.Descriptor{
		Name:          "countdown",
		Generations:   []capability.Generation{capability.GenerationClassic},
		DefaultActive: true,
		Category:      "content",
		CategoryTitle: "Content",
		Classes: map[capability.Role]capability.ClassRef{
			capability.RoleRoot: {
				ID:  "CountdownModule",
				New: func() (capability.Capability, error) { return &countdownModule{}, nil },
			},
		},
	}
}
