package colorscale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatlas/internal/colorscale"
	"coatlas/internal/errors"
)

func TestClassify_ThreeObviousClusters(t *testing.T) {
	values := []float64{1, 2, 3, 11, 12, 13, 21, 22, 23}
	spec := colorscale.RampSpec{Name: "Greens", Classes: 3}

	c, err := colorscale.Classify(values, spec)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 3, 13, 23}, c.Breaks)
	assert.Equal(t, 3, c.K())

	assert.Equal(t, 0, c.ClassOf(1))
	assert.Equal(t, 0, c.ClassOf(3))
	assert.Equal(t, 1, c.ClassOf(11))
	assert.Equal(t, 1, c.ClassOf(13))
	assert.Equal(t, 2, c.ClassOf(21))
	assert.Equal(t, 2, c.ClassOf(23))

	// Clearly separated clusters classify almost perfectly.
	assert.Greater(t, c.GoodnessOfFit(values), 0.95)
}

func TestClassify_Deterministic(t *testing.T) {
	values := []float64{0.021, 0.045, 0.032, 0.038, 0.025, 0.029, 0.041}
	spec := colorscale.DefaultRamp()

	first, err := colorscale.Classify(values, spec)
	require.NoError(t, err)
	second, err := colorscale.Classify(values, spec)
	require.NoError(t, err)

	assert.Equal(t, first.Breaks, second.Breaks)
	assert.Equal(t, first.Colors, second.Colors)
}

func TestClassify_ClassIndexMonotoneInValue(t *testing.T) {
	values := []float64{0.021, 0.045, 0.032, 0.038, 0.025, 0.029, 0.041}
	c, err := colorscale.Classify(values, colorscale.DefaultRamp())
	require.NoError(t, err)

	previous := -1
	for _, v := range []float64{0.021, 0.025, 0.029, 0.032, 0.038, 0.041, 0.045} {
		class := c.ClassOf(v)
		assert.GreaterOrEqual(t, class, previous, "class must not decrease as values grow")
		previous = class
	}
}

func TestClassify_BoundsCoverData(t *testing.T) {
	values := []float64{4, 9, 2, 7, 5, 1, 8}
	c, err := colorscale.Classify(values, colorscale.RampSpec{Name: "Greens", Classes: 3})
	require.NoError(t, err)

	assert.Equal(t, 1.0, c.Breaks[0])
	assert.Equal(t, 9.0, c.Breaks[len(c.Breaks)-1])
	for i := 1; i < len(c.Breaks); i++ {
		assert.LessOrEqual(t, c.Breaks[i-1], c.Breaks[i], "breaks must ascend")
	}
	assert.Len(t, c.Colors, c.K())
}

func TestClassify_FewerDistinctValuesThanClasses(t *testing.T) {
	c, err := colorscale.Classify([]float64{0.03, 0.03, 0.05}, colorscale.DefaultRamp())
	require.NoError(t, err)
	assert.Equal(t, 2, c.K())
	assert.Equal(t, 0, c.ClassOf(0.03))
	assert.Equal(t, 1, c.ClassOf(0.05))
}

func TestClassify_AllValuesIdentical(t *testing.T) {
	c, err := colorscale.Classify([]float64{0.04, 0.04, 0.04}, colorscale.DefaultRamp())
	require.NoError(t, err)
	assert.Equal(t, 1, c.K())
	assert.Equal(t, 0, c.ClassOf(0.04))
	assert.Equal(t, 1.0, c.GoodnessOfFit([]float64{0.04, 0.04, 0.04}))
}

func TestClassify_EmptyInput(t *testing.T) {
	_, err := colorscale.Classify(nil, colorscale.DefaultRamp())
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
