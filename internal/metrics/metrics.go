package metrics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"coatlas/internal/dataset"
)

// Rank is one (state, value) row of a top-N or bottom-N table.
type Rank struct {
	State string  `json:"state"`
	Value float64 `json:"value"`
}

// nonNull extracts the observations carrying a value, preserving scan order.
// States with a null reading never participate in ranking or averaging.
func nonNull(observations []dataset.Observation) []dataset.Observation {
	kept := make([]dataset.Observation, 0, len(observations))
	for _, obs := range observations {
		if obs.Value != nil {
			kept = append(kept, obs)
		}
	}
	return kept
}

// TopN returns up to n states with the greatest values, descending. Ties at
// the cutoff rank resolve by stable input order: the first n encountered in
// scan order win, never an alphabetical or arbitrary reshuffle. An empty or
// all-null slice yields an empty result, not an error; the view renders a
// no-data placeholder.
func TopN(observations []dataset.Observation, n int) []Rank {
	return rank(observations, n, func(a, b float64) bool { return a > b })
}

// BottomN is symmetric to TopN: up to n states with the lowest values,
// ascending.
func BottomN(observations []dataset.Observation, n int) []Rank {
	return rank(observations, n, func(a, b float64) bool { return a < b })
}

func rank(observations []dataset.Observation, n int, before func(a, b float64) bool) []Rank {
	if n <= 0 {
		return []Rank{}
	}
	kept := nonNull(observations)
	sort.SliceStable(kept, func(i, j int) bool {
		return before(*kept[i].Value, *kept[j].Value)
	})
	if n > len(kept) {
		n = len(kept)
	}
	ranks := make([]Rank, 0, n)
	for _, obs := range kept[:n] {
		ranks = append(ranks, Rank{State: obs.State, Value: *obs.Value})
	}
	return ranks
}

// NationalMean computes the arithmetic mean of all non-null values, rounded
// to 3 decimal places. Rounding happens here and nowhere earlier so that
// normalization downstream never compounds rounding error. A slice with no
// non-null values yields nil, not zero.
func NationalMean(observations []dataset.Observation) *float64 {
	values := Values(observations)
	if len(values) == 0 {
		return nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	rounded := math.Round(mean*1000) / 1000
	return &rounded
}

// Extent returns the observed [min, max] of the non-null values. ok is false
// when the slice has no values to bound.
func Extent(observations []dataset.Observation) (vmin, vmax float64, ok bool) {
	values := Values(observations)
	if len(values) == 0 {
		return 0, 0, false
	}
	vmin, _ = stats.Min(values)
	vmax, _ = stats.Max(values)
	return vmin, vmax, true
}

// Values extracts the non-null values in scan order.
func Values(observations []dataset.Observation) []float64 {
	values := make([]float64, 0, len(observations))
	for _, obs := range observations {
		if obs.Value != nil {
			values = append(values, *obs.Value)
		}
	}
	return values
}
