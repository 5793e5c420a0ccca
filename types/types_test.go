package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Labels from input files map onto the two wall modes
		for label, want := range map[string]BCFLAG{
			"solid-no-slip":   BC_NoSlip,
			"Solid-Free-Slip": BC_FreeSlip,
			" slip ":          BC_FreeSlip,
			"":                BC_NoSlip,
			"NoSlip":          BC_NoSlip,
		} {
			bc, err := NewBoundaryMode(label)
			assert.NoError(t, err, label)
			assert.Equal(t, want, bc, label)
		}
		_, err := NewBoundaryMode("periodic")
		assert.Error(t, err)
	}
	{ // String round trips through the name map
		for _, bc := range []BCFLAG{BC_NoSlip, BC_FreeSlip} {
			parsed, err := NewBoundaryMode(bc.String())
			assert.NoError(t, err)
			assert.Equal(t, bc, parsed)
		}
		assert.Equal(t, "BCFLAG(7)", BCFLAG(7).String())
	}
}
