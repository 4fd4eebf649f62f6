package geo

import "encoding/json"

// Years is the fixed range covered by the source dataset, ascending.
var Years = []int{2020, 2021, 2022, 2023, 2024}

// ValidYear reports whether year falls inside the fixed dataset range.
func ValidYear(year int) bool {
	for _, y := range Years {
		if y == year {
			return true
		}
	}
	return false
}

// Region is one state feature from the source file: the state name, its
// boundary geometry (kept opaque and passed through to the map payload
// untouched), and one mean CO value per year. A nil value means the upstream
// aggregation produced no reading for that state and year.
type Region struct {
	State    string
	Geometry json.RawMessage
	Values   map[int]*float64
}

// Value returns the region's mean CO value for a year, nil when absent.
func (r *Region) Value(year int) *float64 {
	return r.Values[year]
}
