package colorscale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coatlas/internal/colorscale"
)

func TestNormalize_Endpoints(t *testing.T) {
	assert.Equal(t, 0.0, colorscale.Normalize(0.021, 0.021, 0.045))
	assert.Equal(t, 1.0, colorscale.Normalize(0.045, 0.021, 0.045))
}

func TestNormalize_Midpoint(t *testing.T) {
	// The worked example: the rounded national mean sits halfway between the
	// year's extremes, up to float rounding in the subtraction.
	assert.InDelta(t, 0.5, colorscale.Normalize(0.033, 0.021, 0.045), 1e-12)
}

func TestNormalize_DegenerateExtent(t *testing.T) {
	// vmin == vmax must not divide by zero; 0.5 regardless of v.
	for _, v := range []float64{-1, 0, 0.04, 100} {
		assert.Equal(t, 0.5, colorscale.Normalize(v, 0.04, 0.04))
	}
}

func TestNormalize_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 0.0, colorscale.Normalize(-5, 0, 1))
	assert.Equal(t, 1.0, colorscale.Normalize(7, 0, 1))
}
