package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
)

func TestGetDefault(t *testing.T) {
	p := Get(Default)
	assert.Equal(t, fingerprint.DefaultParams, p.Params)
	assert.True(t, p.Interop)
	assert.NoError(t, p.Params.Validate())
}

func TestGetUnknownFallsBack(t *testing.T) {
	p := Get("nope")
	assert.Equal(t, "nope", p.Name)
	assert.Equal(t, fingerprint.DefaultParams, p.Params)
}

func TestBuiltinsValid(t *testing.T) {
	for _, name := range Names() {
		assert.NoError(t, Get(name).Params.Validate(), name)
	}
	assert.False(t, Get("fine").Interop)
}

func TestWithOverrides(t *testing.T) {
	p := Get(Default).WithOverrides(0, 0, 0)
	assert.True(t, p.Interop)

	p = Get(Default).WithOverrides(0, 8, 0)
	assert.True(t, p.Interop, "same value is not an override")

	p = Get(Default).WithOverrides(48, 0, 0)
	assert.False(t, p.Interop)
	assert.Equal(t, 48, p.Params.DescriptorEdge)
	assert.Equal(t, 8, p.Params.TrimSize)
}
