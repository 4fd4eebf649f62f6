package colorscale

// Normalize maps v into [0,1] by linear min-max scaling against the observed
// extent of the current year slice. The degenerate extent vmin == vmax (all
// values identical, or a single state) returns 0.5 for any v instead of
// dividing by zero. Values outside the extent clamp to the nearest bound.
func Normalize(v, vmin, vmax float64) float64 {
	if vmin == vmax {
		return 0.5
	}
	t := (v - vmin) / (vmax - vmin)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
