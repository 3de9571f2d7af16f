package capability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modkit-io/modkit/pkg/capability"
)

type nopCapability struct{}

func (nopCapability) RegisterHooks(capability.Host) error { return nil }

func newFactory() capability.Factory {
	return func() (capability.Capability, error) { return nopCapability{}, nil }
}

func descriptor(name string, gens ...capability.Generation) capability.Descriptor {
	return capability.Descriptor{
		Name:        name,
		Generations: gens,
		Classes: map[capability.Role]capability.ClassRef{
			capability.RoleRoot: {ID: name + "Module", New: newFactory()},
		},
	}
}

func TestDescriptorValidate(t *testing.T) {
	d := descriptor("gallery", capability.GenerationClassic)
	require.NoError(t, d.Validate())

	missing := d
	missing.Name = ""
	require.Error(t, missing.Validate())

	noGen := d
	noGen.Generations = nil
	require.Error(t, noGen.Validate())

	badGen := d
	badGen.Generations = []capability.Generation{"v9"}
	require.Error(t, badGen.Validate())

	noClasses := d
	noClasses.Classes = nil
	require.Error(t, noClasses.Validate())

	emptyReq := d
	emptyReq.Requires = &capability.Requirement{}
	require.Error(t, emptyReq.Validate())
}

func TestDescriptorSupportsGeneration(t *testing.T) {
	d := descriptor("dual", capability.GenerationClassic, capability.GenerationBlocks)
	assert.True(t, d.SupportsGeneration(capability.GenerationClassic))
	assert.True(t, d.SupportsGeneration(capability.GenerationBlocks))

	classicOnly := descriptor("classic", capability.GenerationClassic)
	assert.True(t, classicOnly.SupportsGeneration(capability.GenerationClassic))
	assert.False(t, classicOnly.SupportsGeneration(capability.GenerationBlocks))
}

func TestDescriptorRootClassID(t *testing.T) {
	d := capability.Descriptor{
		Name:        "banner",
		Generations: []capability.Generation{capability.GenerationClassic, capability.GenerationBlocks},
		Classes: map[capability.Role]capability.ClassRef{
			capability.RoleRoot:      {ID: "BannerModule", New: newFactory()},
			capability.RoleBlockRoot: {ID: "BannerBlock", New: newFactory()},
		},
	}
	assert.Equal(t, "BannerModule", d.RootClassID(capability.GenerationClassic))
	assert.Equal(t, "BannerBlock", d.RootClassID(capability.GenerationBlocks))

	noBlock := descriptor("classic", capability.GenerationClassic)
	assert.Equal(t, "", noBlock.RootClassID(capability.GenerationBlocks))
}

func TestParseRequirement(t *testing.T) {
	assert.Nil(t, capability.ParseRequirement(""))
	assert.Nil(t, capability.ParseRequirement("  "))

	single := capability.ParseRequirement("contact-form-7")
	require.NotNil(t, single)
	assert.Equal(t, []string{"contact-form-7"}, single.AllOf)
	assert.Empty(t, single.AnyOf)

	group := capability.ParseRequirement("wpforms-lite/wpforms.php|wpforms/wpforms.php")
	require.NotNil(t, group)
	assert.Equal(t, []string{"wpforms-lite/wpforms.php", "wpforms/wpforms.php"}, group.AnyOf)
	assert.Empty(t, group.AllOf)
}

func TestRequirementSatisfied(t *testing.T) {
	active := []string{"contact-form-7", "woocommerce"}

	tests := []struct {
		name string
		req  *capability.Requirement
		want bool
	}{
		{"nil requirement", nil, true},
		{"empty fails closed", &capability.Requirement{}, false},
		{"any-of hit", &capability.Requirement{AnyOf: []string{"missing", "woocommerce"}}, true},
		{"any-of miss", &capability.Requirement{AnyOf: []string{"missing", "also-missing"}}, false},
		{"all-of subset", &capability.Requirement{AllOf: []string{"contact-form-7", "woocommerce"}}, true},
		{"all-of partial", &capability.Requirement{AllOf: []string{"contact-form-7", "missing"}}, false},
		{"single all-of", &capability.Requirement{AllOf: []string{"contact-form-7"}}, true},
		{"both hold", &capability.Requirement{AnyOf: []string{"woocommerce"}, AllOf: []string{"contact-form-7"}}, true},
		{"both, all-of fails", &capability.Requirement{AnyOf: []string{"woocommerce"}, AllOf: []string{"missing"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Satisfied(active))
		})
	}
}

func TestCatalogRegister(t *testing.T) {
	catalog := capability.NewCatalog()

	require.NoError(t, catalog.Register(descriptor("gallery", capability.GenerationClassic)))
	require.NoError(t, catalog.Register(descriptor("countdown", capability.GenerationClassic)))

	err := catalog.Register(descriptor("gallery", capability.GenerationClassic))
	require.ErrorIs(t, err, capability.ErrAlreadyRegistered)

	require.Error(t, catalog.Register(capability.Descriptor{Name: "broken"}))

	assert.Equal(t, 2, catalog.Len())

	d, ok := catalog.Lookup("gallery")
	require.True(t, ok)
	assert.Equal(t, "gallery", d.Name)

	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)
}

func TestCatalogOrdering(t *testing.T) {
	catalog := capability.NewCatalog()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, catalog.Register(descriptor(name, capability.GenerationClassic)))
	}

	var names []string
	for _, d := range catalog.All() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestCatalogPremium(t *testing.T) {
	catalog := capability.NewCatalog()
	require.NoError(t, catalog.Register(descriptor("free", capability.GenerationClassic)))
	require.NoError(t, catalog.RegisterPremium(descriptor("pro", capability.GenerationClassic)))

	assert.True(t, catalog.IsPremium("pro"))
	assert.False(t, catalog.IsPremium("free"))

	premium := catalog.Premium()
	require.Len(t, premium, 1)
	assert.Equal(t, "pro", premium[0].Name)

	registered := catalog.Registered()
	require.Len(t, registered, 1)
	assert.Equal(t, "free", registered[0].Name)

	assert.Len(t, catalog.All(), 2)

	// A licensed installation has nothing locked.
	catalog.SetLicensed(true)
	assert.Empty(t, catalog.Premium())
	assert.Len(t, catalog.All(), 2)
}

func TestStaticHost(t *testing.T) {
	host := capability.NewStaticHost(true, "contact-form-7")

	assert.True(t, host.SupportsBlockTree())
	assert.Equal(t, []string{"contact-form-7"}, host.ActivePlugins())
	assert.Empty(t, host.RegisteredBlocks())
}
