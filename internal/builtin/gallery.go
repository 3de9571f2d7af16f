package builtin

import "github.com/modkit-io/modkit/pkg/capability"

// galleryModule renders an image grid. It is the root class for the classic
// generation and carries a child class for individual items.
type galleryModule struct {
	slug string
}

func (m *galleryModule) RegisterHooks(host capability.Host) error {
	return nil
}

// galleryItem is the per-image child class.
type galleryItem struct {
	slug string
}

func (m *galleryItem) RegisterHooks(host capability.Host) error {
	return nil
}

// galleryBlock is the block-tree root. It satisfies BlockCapability so the
// host can place it in its dependency tree.
type galleryBlock struct {
	slug string
}

func (m *galleryBlock) RegisterHooks(host capability.Host) error {
	return nil
}

func (m *galleryBlock) BlockName() string {
	return "modkit/gallery"
}

func galleryDescriptor() capability.Descriptor {
	return capability.Descriptor{
		Name:          "gallery",
		Generations:   []capability.Generation{capability.GenerationClassic, capability.GenerationBlocks},
		DefaultActive: true,
		Category:      "media",
		CategoryTitle: "Media",
		Classes: map[capability.Role]capability.ClassRef{
			capability.RoleRoot: {
				ID:  "GalleryModule",
				New: func() (capability.Capability, error) { return &galleryModule{slug: "gallery"}, nil },
			},
			capability.RoleChild: {
				ID:  "GalleryItem",
				New: func() (capability.Capability, error) { return &galleryItem{slug: "gallery_item"}, nil },
			},
			capability.RoleBlockRoot: {
				ID:  "GalleryBlock",
				New: func() (capability.Capability, error) { return &galleryBlock{slug: "gallery"}, nil },
			},
		},
	}
}
