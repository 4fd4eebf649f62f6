package colorscale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatlas/internal/colorscale"
)

func TestColorize_RampEndpoints(t *testing.T) {
	greens := colorscale.DefaultRamp()

	low, err := colorscale.Colorize(0, greens)
	require.NoError(t, err)
	assert.Equal(t, "#edf8e9", low)

	high, err := colorscale.Colorize(1, greens)
	require.NoError(t, err)
	assert.Equal(t, "#006d2c", high)
}

func TestColorize_MidpointHitsMiddleAnchor(t *testing.T) {
	// A five-anchor ramp places t=0.5 exactly on the third anchor, which is
	// what keeps the donut indicator consistent with the map legend.
	color, err := colorscale.Colorize(0.5, colorscale.DefaultRamp())
	require.NoError(t, err)
	assert.Equal(t, "#74c476", color)
}

func TestColorize_ClampsT(t *testing.T) {
	greens := colorscale.DefaultRamp()
	low, err := colorscale.Colorize(-0.3, greens)
	require.NoError(t, err)
	high, err2 := colorscale.Colorize(1.7, greens)
	require.NoError(t, err2)
	assert.Equal(t, "#edf8e9", low)
	assert.Equal(t, "#006d2c", high)
}

func TestColorize_UnknownRamp(t *testing.T) {
	_, err := colorscale.Colorize(0.5, colorscale.RampSpec{Name: "Purples", Classes: 5})
	assert.Error(t, err)
}

func TestClassColors_FiveClassGreensMatchesAnchors(t *testing.T) {
	colors, err := colorscale.ClassColors(5, colorscale.DefaultRamp())
	require.NoError(t, err)
	assert.Equal(t, []string{"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c"}, colors)
}

func TestClassColors_SingleClass(t *testing.T) {
	colors, err := colorscale.ClassColors(1, colorscale.DefaultRamp())
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, "#74c476", colors[0])
}

func TestKnownRamp(t *testing.T) {
	assert.True(t, colorscale.KnownRamp("Greens"))
	assert.False(t, colorscale.KnownRamp("Rainbow"))
}
