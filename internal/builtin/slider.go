package builtin

import "github.com/modkit-io/modkit/pkg/capability"

// sliderModule is a full-width capable carousel. It registers both the
// standard and full-width root slots plus their child slide classes.
type sliderModule struct {
	fullWidth bool
}

func (m *sliderModule) RegisterHooks(host capability.Host) error {
	return nil
}

type sliderSlide struct {
	fullWidth bool
}

func (m *sliderSlide) RegisterHooks(host capability.Host) error {
	return nil
}

type sliderBlock struct{}

func (m *sliderBlock) RegisterHooks(host capability.Host) error {
	return nil
}

func (m *sliderBlock) BlockName() string {
	return "modkit/slider"
}

func sliderDescriptor() capability.Descriptor {
	return capability.Descriptor{
		Name:          "slider",
		Generations:   []capability.Generation{capability.GenerationClassic, capability.GenerationBlocks},
		DefaultActive: true,
		Category:      "media",
		CategoryTitle: "Media",
		Classes: map[capability.Role]capability.ClassRef{
			capability.RoleRoot: {
				ID:  "SliderModule",
				New: func() (capability.Capability, error) { return &sliderModule{}, nil },
			},
			capability.RoleChild: {
				ID:  "SliderSlide",
				New: func() (capability.Capability, error) { return &sliderSlide{}, nil },
			},
			capability.RoleFullWidth: {
				ID:  "FullWidthSliderModule",
				New: func() (capability.Capability, error) { return &sliderModule{fullWidth: true}, nil },
			},
			capability.RoleChildFullWidth: {
				ID:  "FullWidthSliderSlide",
				New: func() (capability.Capability, error) { return &sliderSlide{fullWidth: true}, nil },
			},
			capability.RoleBlockRoot: {
				ID:  "SliderBlock",
				New: func() (capability.Capability, error) { return &sliderBlock{}, nil },
			},
		},
	}
}
