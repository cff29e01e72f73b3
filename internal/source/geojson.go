// Package source loads geographic feature collections from files and DuckDB.
package source

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads and parses a GeoJSON feature collection from path.
func LoadGeoJSON(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}
	return fc, nil
}
