package geo

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"coatlas/internal/errors"
)

// Reader handles reading the per-state GeoJSON dataset
type Reader struct {
	filePath string
}

// NewReader creates a reader for a GeoJSON FeatureCollection file
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath}
}

// featureCollection mirrors the GeoJSON wire format. Geometry is kept raw;
// nothing in the pipeline interprets coordinates.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// ReadRegions reads and validates the dataset into one Region per state.
// Any failure is DATA_UNAVAILABLE: a missing or malformed file, a feature
// without a State property, a duplicate state, or a feature missing one of
// the expected {year}_mean columns. Partial data is never returned.
func (r *Reader) ReadRegions() ([]Region, error) {
	startTime := time.Now()

	raw, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, errors.DataUnavailable(fmt.Sprintf("dataset file %s is not readable", r.filePath), err)
	}

	var fc featureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, errors.DataUnavailable(fmt.Sprintf("dataset file %s is not valid GeoJSON", r.filePath), err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, errors.DataUnavailable(fmt.Sprintf("dataset file %s is a %q, expected a FeatureCollection", r.filePath, fc.Type), nil)
	}
	if len(fc.Features) == 0 {
		return nil, errors.DataUnavailable(fmt.Sprintf("dataset file %s has no features", r.filePath), nil)
	}

	regions := make([]Region, 0, len(fc.Features))
	seen := make(map[string]bool, len(fc.Features))
	for i, f := range fc.Features {
		region, err := parseFeature(i, f)
		if err != nil {
			return nil, err
		}
		if seen[region.State] {
			return nil, errors.DataUnavailable(fmt.Sprintf("duplicate state %q in dataset", region.State), nil)
		}
		seen[region.State] = true
		regions = append(regions, region)
	}

	log.Printf("[GeoReader] Loaded %d state features from %s in %.2fms",
		len(regions), r.filePath, float64(time.Since(startTime).Nanoseconds())/1e6)
	return regions, nil
}

// parseFeature extracts the State name and the per-year mean columns from one
// feature's properties. Year columns must be present on every feature; a JSON
// null value is allowed and kept as nil.
func parseFeature(index int, f feature) (Region, error) {
	var props map[string]json.RawMessage
	if err := json.Unmarshal(f.Properties, &props); err != nil {
		return Region{}, errors.DataUnavailable(fmt.Sprintf("feature %d has malformed properties", index), err)
	}

	var state string
	if raw, ok := props["State"]; ok {
		if err := json.Unmarshal(raw, &state); err != nil {
			return Region{}, errors.DataUnavailable(fmt.Sprintf("feature %d has a non-string State property", index), err)
		}
	}
	if state == "" {
		return Region{}, errors.DataUnavailable(fmt.Sprintf("feature %d is missing its State property", index), nil)
	}

	values := make(map[int]*float64, len(Years))
	for _, year := range Years {
		column := fmt.Sprintf("%d_mean", year)
		raw, ok := props[column]
		if !ok {
			return Region{}, errors.DataUnavailable(fmt.Sprintf("state %q is missing column %s", state, column), nil)
		}
		var value *float64
		if err := json.Unmarshal(raw, &value); err != nil {
			return Region{}, errors.DataUnavailable(fmt.Sprintf("state %q has a non-numeric %s", state, column), err)
		}
		values[year] = value
	}

	return Region{
		State:    state,
		Geometry: f.Geometry,
		Values:   values,
	}, nil
}
