package colorscale

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"coatlas/internal/errors"
)

// RampSpec names a sequential color ramp and the class count the choropleth
// bins into. A single RampSpec value is shared by the continuous indicator
// path and the classed map path so the two never drift apart.
type RampSpec struct {
	Name    string `json:"name"`
	Classes int    `json:"classes"`
}

// DefaultRamp matches the original dashboard: 5-class Greens.
func DefaultRamp() RampSpec {
	return RampSpec{Name: "Greens", Classes: 5}
}

// ramps holds the ColorBrewer sequential anchors, light to dark.
var ramps = map[string][]string{
	"Greens":  {"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c"},
	"Blues":   {"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"},
	"Oranges": {"#feedde", "#fdbe85", "#fd8d3c", "#e6550d", "#a63603"},
}

// KnownRamp reports whether name resolves to a registered ramp.
func KnownRamp(name string) bool {
	_, ok := ramps[name]
	return ok
}

// Colorize maps a normalized position t in [0,1] to a hex color by blending
// between the ramp's anchors. t outside [0,1] is clamped rather than
// rejected; normalization already guarantees the range on the happy path.
func Colorize(t float64, spec RampSpec) (string, error) {
	anchors, ok := ramps[spec.Name]
	if !ok {
		return "", errors.InvalidInput(fmt.Sprintf("unknown color ramp %q", spec.Name))
	}

	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(len(anchors)-1)
	i := int(math.Floor(pos))
	if i >= len(anchors)-1 {
		i = len(anchors) - 2
	}
	frac := pos - float64(i)

	low, err := colorful.Hex(anchors[i])
	if err != nil {
		return "", errors.Wrapf(err, "ramp %q anchor %d is malformed", spec.Name, i)
	}
	high, err := colorful.Hex(anchors[i+1])
	if err != nil {
		return "", errors.Wrapf(err, "ramp %q anchor %d is malformed", spec.Name, i+1)
	}
	return low.BlendRgb(high, frac).Hex(), nil
}

// ClassColors samples k evenly spaced colors from the ramp, light to dark,
// one per choropleth class.
func ClassColors(k int, spec RampSpec) ([]string, error) {
	if k < 1 {
		return nil, errors.InvalidInput("class count must be at least 1")
	}
	colors := make([]string, k)
	for i := 0; i < k; i++ {
		t := 0.5
		if k > 1 {
			t = float64(i) / float64(k-1)
		}
		color, err := Colorize(t, spec)
		if err != nil {
			return nil, err
		}
		colors[i] = color
	}
	return colors, nil
}
