package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatlas/internal/dataset"
	"coatlas/internal/metrics"
)

func f(v float64) *float64 { return &v }

// slice2024 is the worked example: three states with values and one with a
// null reading.
func slice2024() []dataset.Observation {
	return []dataset.Observation{
		{State: "Lagos", Year: 2024, Value: f(0.045)},
		{State: "Kano", Year: 2024, Value: f(0.032)},
		{State: "Borno", Year: 2024, Value: f(0.021)},
		{State: "Yobe", Year: 2024, Value: nil},
	}
}

func TestTopN_WorkedExample(t *testing.T) {
	top := metrics.TopN(slice2024(), 3)
	require.Len(t, top, 3)
	assert.Equal(t, metrics.Rank{State: "Lagos", Value: 0.045}, top[0])
	assert.Equal(t, metrics.Rank{State: "Kano", Value: 0.032}, top[1])
	assert.Equal(t, metrics.Rank{State: "Borno", Value: 0.021}, top[2])
}

func TestBottomN_WorkedExample(t *testing.T) {
	bottom := metrics.BottomN(slice2024(), 3)
	require.Len(t, bottom, 3)
	assert.Equal(t, "Borno", bottom[0].State)
	assert.Equal(t, "Kano", bottom[1].State)
	assert.Equal(t, "Lagos", bottom[2].State)
}

func TestRanking_NullsNeverEligible(t *testing.T) {
	// Yobe is null: even asking for more rows than states must not surface it.
	top := metrics.TopN(slice2024(), 10)
	require.Len(t, top, 3)
	for _, rank := range top {
		assert.NotEqual(t, "Yobe", rank.State)
	}
}

func TestRanking_TieBreakIsStableInputOrder(t *testing.T) {
	observations := []dataset.Observation{
		{State: "A", Value: f(5)},
		{State: "B", Value: f(3)},
		{State: "C", Value: f(3)},
		{State: "D", Value: f(3)},
		{State: "E", Value: f(1)},
	}

	top := metrics.TopN(observations, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].State)
	// B, C and D tie at the cutoff; first-seen order wins.
	assert.Equal(t, "B", top[1].State)

	bottom := metrics.BottomN(observations, 2)
	require.Len(t, bottom, 2)
	assert.Equal(t, "E", bottom[0].State)
	assert.Equal(t, "B", bottom[1].State)
}

func TestRanking_TopAndBottomDisjoint(t *testing.T) {
	observations := []dataset.Observation{
		{State: "A", Value: f(0.010)},
		{State: "B", Value: f(0.020)},
		{State: "C", Value: f(0.030)},
		{State: "D", Value: f(0.040)},
		{State: "E", Value: f(0.050)},
		{State: "F", Value: f(0.060)},
	}

	top := metrics.TopN(observations, 3)
	bottom := metrics.BottomN(observations, 3)
	seen := map[string]bool{}
	for _, rank := range top {
		seen[rank.State] = true
	}
	for _, rank := range bottom {
		assert.Falsef(t, seen[rank.State], "state %s appears in both tables", rank.State)
	}
}

func TestRanking_EmptyAndAllNull(t *testing.T) {
	assert.Empty(t, metrics.TopN(nil, 3))
	assert.Empty(t, metrics.BottomN(nil, 3))

	allNull := []dataset.Observation{
		{State: "A", Value: nil},
		{State: "B", Value: nil},
	}
	assert.Empty(t, metrics.TopN(allNull, 3))
	assert.Empty(t, metrics.BottomN(allNull, 3))
}

func TestNationalMean_WorkedExample(t *testing.T) {
	mean := metrics.NationalMean(slice2024())
	require.NotNil(t, mean)
	// (0.045 + 0.032 + 0.021) / 3 = 0.032666..., rounded to 3 decimals.
	assert.Equal(t, 0.033, *mean)
}

func TestNationalMean_AllNullIsNullNotZero(t *testing.T) {
	allNull := []dataset.Observation{
		{State: "A", Value: nil},
		{State: "B", Value: nil},
	}
	assert.Nil(t, metrics.NationalMean(allNull))
	assert.Nil(t, metrics.NationalMean(nil))
}

func TestExtent(t *testing.T) {
	vmin, vmax, ok := metrics.Extent(slice2024())
	require.True(t, ok)
	assert.Equal(t, 0.021, vmin)
	assert.Equal(t, 0.045, vmax)

	_, _, ok = metrics.Extent([]dataset.Observation{{State: "A", Value: nil}})
	assert.False(t, ok)
}
