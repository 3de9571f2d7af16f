package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modkit-io/modkit/pkg/capability"
)

func TestRegisterAll(t *testing.T) {
	catalog := capability.NewCatalog()
	require.NoError(t, RegisterAll(catalog))

	assert.Equal(t, 5, catalog.Len())

	for _, d := range catalog.All() {
		assert.NoError(t, d.Validate(), "descriptor %s", d.Name)
	}
}

func TestRegisterAllRejectsDuplicates(t *testing.T) {
	catalog := capability.NewCatalog()
	require.NoError(t, RegisterAll(catalog))

	err := RegisterAll(catalog)
	require.Error(t, err)
	assert.ErrorIs(t, err, capability.ErrAlreadyRegistered)
}

func TestPricingTableIsPremium(t *testing.T) {
	catalog := capability.NewCatalog()
	require.NoError(t, RegisterAll(catalog))

	assert.True(t, catalog.IsPremium("pricing_table"))
	assert.False(t, catalog.IsPremium("gallery"))
}

func TestBlockRootsImplementBlockCapability(t *testing.T) {
	catalog := capability.NewCatalog()
	require.NoError(t, RegisterAll(catalog))

	for _, d := range catalog.All() {
		ref, ok := d.Class(capability.RoleBlockRoot)
		if !ok {
			continue
		}
		instance, err := ref.New()
		require.NoError(t, err)

		block, ok := instance.(capability.BlockCapability)
		require.True(t, ok, "block root of %s must implement BlockCapability", d.Name)
		assert.NotEmpty(t, block.BlockName())
	}
}

func TestFormStylerRequiresFormPlugin(t *testing.T) {
	catalog := capability.NewCatalog()
	require.NoError(t, RegisterAll(catalog))

	d, ok := catalog.Lookup("form_styler")
	require.True(t, ok)
	require.NotNil(t, d.Requires)

	assert.False(t, d.Requires.Satisfied(nil))
	assert.True(t, d.Requires.Satisfied([]string{"wpforms"}))
}

func TestCountdownIsClassicOnly(t *testing.T) {
	catalog := capability.NewCatalog()
	require.NoError(t, RegisterAll(catalog))

	d, ok := catalog.Lookup("countdown")
	require.True(t, ok)
	assert.True(t, d.SupportsGeneration(capability.GenerationClassic))
	assert.False(t, d.SupportsGeneration(capability.GenerationBlocks))
}
