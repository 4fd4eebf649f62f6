package colorscale

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"coatlas/internal/errors"
)

// Classification is a natural-breaks binning of one year slice. Breaks holds
// the ascending class bounds: Breaks[0] is the data minimum, Breaks[len-1]
// the maximum, so k classes carry k+1 bounds. Colors holds one hex color per
// class, sampled from the shared ramp.
type Classification struct {
	Breaks []float64 `json:"breaks"`
	Colors []string  `json:"colors"`
}

// Classify bins values into at most spec.Classes classes using Fisher-Jenks
// natural breaks. The break positions are fully determined by the sorted
// values, so the same slice always classifies identically. Fewer distinct
// values than classes collapse to one class per distinct value. An empty
// input is INVALID_INPUT; callers filter nulls before classifying.
func Classify(values []float64, spec RampSpec) (*Classification, error) {
	if len(values) == 0 {
		return nil, errors.InvalidInput("cannot classify an empty value set")
	}
	if spec.Classes < 1 {
		return nil, errors.InvalidInput("class count must be at least 1")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	k := spec.Classes
	if distinct := countDistinct(sorted); distinct < k {
		k = distinct
	}

	var breaks []float64
	if k == 1 {
		breaks = []float64{sorted[0], sorted[len(sorted)-1]}
	} else {
		breaks = jenksBreaks(sorted, k)
	}

	colors, err := ClassColors(len(breaks)-1, spec)
	if err != nil {
		return nil, err
	}

	return &Classification{Breaks: breaks, Colors: colors}, nil
}

// K returns the class count.
func (c *Classification) K() int {
	return len(c.Breaks) - 1
}

// ClassOf returns the class index for a value, in [0, K). Each inner break
// is the inclusive upper bound of its class; values beyond the data maximum
// clamp into the last class.
func (c *Classification) ClassOf(v float64) int {
	k := c.K()
	for i := 1; i < k; i++ {
		if v <= c.Breaks[i] {
			return i - 1
		}
	}
	return k - 1
}

// ColorOf returns the class color for a value.
func (c *Classification) ColorOf(v float64) string {
	return c.Colors[c.ClassOf(v)]
}

// GoodnessOfFit reports the goodness-of-variance fit of the classification
// over values: 1 minus the ratio of within-class squared deviation to total
// squared deviation. 1.0 means every class is internally uniform.
func (c *Classification) GoodnessOfFit(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := stat.Mean(values, nil)
	total := 0.0
	for _, v := range values {
		d := v - mean
		total += d * d
	}
	if total == 0 {
		return 1
	}

	groups := make([][]float64, c.K())
	for _, v := range values {
		class := c.ClassOf(v)
		groups[class] = append(groups[class], v)
	}

	within := 0.0
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		groupMean := stat.Mean(group, nil)
		for _, v := range group {
			d := v - groupMean
			within += d * d
		}
	}
	return 1 - within/total
}

func countDistinct(sorted []float64) int {
	distinct := 0
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			distinct++
		}
	}
	return distinct
}

// jenksBreaks computes the classic Fisher-Jenks dynamic program over sorted
// data: lowerClassLimits[l][j] records the optimal start of class j for the
// first l elements, varianceCombinations the matching sum of within-class
// squared deviations. data must be sorted ascending and k in [2, distinct].
func jenksBreaks(data []float64, k int) []float64 {
	n := len(data)

	lowerClassLimits := make([][]int, n+1)
	varianceCombinations := make([][]float64, n+1)
	for i := 0; i <= n; i++ {
		lowerClassLimits[i] = make([]int, k+1)
		varianceCombinations[i] = make([]float64, k+1)
	}
	for j := 1; j <= k; j++ {
		lowerClassLimits[1][j] = 1
		varianceCombinations[1][j] = 0
		for l := 2; l <= n; l++ {
			varianceCombinations[l][j] = math.Inf(1)
		}
	}

	variance := 0.0
	for l := 2; l <= n; l++ {
		sum := 0.0
		sumSquares := 0.0
		w := 0.0

		for m := 1; m <= l; m++ {
			lowerClassLimit := l - m + 1
			val := data[lowerClassLimit-1]

			w++
			sum += val
			sumSquares += val * val
			variance = sumSquares - (sum*sum)/w

			if lowerClassLimit == 1 {
				continue
			}
			for j := 2; j <= k; j++ {
				if varianceCombinations[l][j] >= variance+varianceCombinations[lowerClassLimit-1][j-1] {
					lowerClassLimits[l][j] = lowerClassLimit
					varianceCombinations[l][j] = variance + varianceCombinations[lowerClassLimit-1][j-1]
				}
			}
		}

		lowerClassLimits[l][1] = 1
		varianceCombinations[l][1] = variance
	}

	// Walk the limits back into k+1 ascending bounds.
	bounds := make([]float64, k+1)
	bounds[0] = data[0]
	bounds[k] = data[n-1]

	idx := n
	for j := k; j >= 2; j-- {
		bounds[j-1] = data[lowerClassLimits[idx][j]-2]
		idx = lowerClassLimits[idx][j] - 1
	}
	return bounds
}
