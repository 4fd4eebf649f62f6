// Package testkit builds small synthetic datasets with the exact shape of the
// production GeoJSON file, so tests never depend on the real data download.
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"coatlas/internal/geo"
)

// SampleStates lists the fixture states in file order. Yobe carries no
// readings at all, which exercises every null-handling path.
var SampleStates = []string{"Lagos", "Kano", "Borno", "Yobe"}

// SampleValues holds the fixture readings per state and year. The 2024 column
// is the worked example used across the metric tests: Lagos 0.045, Kano
// 0.032, Borno 0.021 give a national mean of 0.033 after rounding.
var SampleValues = map[string]map[int]float64{
	"Lagos": {2020: 0.041, 2021: 0.043, 2022: 0.040, 2023: 0.044, 2024: 0.045},
	"Kano":  {2020: 0.030, 2021: 0.031, 2022: 0.029, 2023: 0.033, 2024: 0.032},
	"Borno": {2020: 0.020, 2021: 0.022, 2022: 0.019, 2023: 0.023, 2024: 0.021},
	"Yobe":  {},
}

// SampleGeoJSON renders the fixture FeatureCollection.
func SampleGeoJSON() ([]byte, error) {
	features := make([]map[string]any, 0, len(SampleStates))
	for i, state := range SampleStates {
		properties := map[string]any{"State": state}
		for _, year := range geo.Years {
			column := fmt.Sprintf("%d_mean", year)
			if value, ok := SampleValues[state][year]; ok {
				properties[column] = value
			} else {
				properties[column] = nil
			}
		}
		offset := float64(i)
		features = append(features, map[string]any{
			"type":       "Feature",
			"properties": properties,
			"geometry": map[string]any{
				"type": "Polygon",
				"coordinates": [][][]float64{{
					{3 + offset, 6}, {4 + offset, 6}, {4 + offset, 7}, {3 + offset, 7}, {3 + offset, 6},
				}},
			},
		})
	}
	return json.Marshal(map[string]any{
		"type":     "FeatureCollection",
		"features": features,
	})
}

// WriteSampleFile writes the fixture dataset into dir and returns its path.
func WriteSampleFile(dir string) (string, error) {
	data, err := SampleGeoJSON()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "nigeria_state_co.geojson")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
