package dataset

import (
	"sort"

	"coatlas/internal/errors"
	"coatlas/internal/geo"
)

// Observation is one long-form (state, year, value) row derived from the
// wide per-year columns of the source file. Value is nil where the source
// holds a null.
type Observation struct {
	State string   `json:"state"`
	Year  int      `json:"year"`
	Value *float64 `json:"value"`
}

// Reshape melts wide per-year columns into long form. The output ordering is
// a contract consumed by the time-series view: all observations for a state
// are contiguous in the input order of records, and years ascend within each
// state even if the caller passes them unsorted. Exactly one observation is
// emitted per (state, year) pair.
func Reshape(records []geo.Region, years []int) []Observation {
	sorted := make([]int, len(years))
	copy(sorted, years)
	sort.Ints(sorted)

	observations := make([]Observation, 0, len(records)*len(sorted))
	for _, record := range records {
		for _, year := range sorted {
			observations = append(observations, Observation{
				State: record.State,
				Year:  year,
				Value: record.Value(year),
			})
		}
	}
	return observations
}

// SelectYear filters observations down to a single year. Defensive: the UI
// only offers years from the fixed range, so an out-of-range year is a
// programming error, reported as INVALID_YEAR.
func SelectYear(observations []Observation, year int) ([]Observation, error) {
	if !geo.ValidYear(year) {
		return nil, errors.InvalidYear(year)
	}

	selected := make([]Observation, 0, len(observations)/len(geo.Years)+1)
	for _, obs := range observations {
		if obs.Year == year {
			selected = append(selected, obs)
		}
	}
	return selected, nil
}

// SelectState filters observations down to a single state, years ascending
// per the Reshape ordering contract. INVALID_STATE when the state never
// appears.
func SelectState(observations []Observation, state string) ([]Observation, error) {
	selected := make([]Observation, 0, len(geo.Years))
	for _, obs := range observations {
		if obs.State == state {
			selected = append(selected, obs)
		}
	}
	if len(selected) == 0 {
		return nil, errors.InvalidState(state)
	}
	return selected, nil
}
