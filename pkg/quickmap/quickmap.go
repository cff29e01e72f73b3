// Package quickmap composes webmap layers from GeoJSON feature collections.
//
// Each builder takes a map handle, a feature collection, and an options
// struct, creates one feature group (or one layer), and attaches it to the
// map. Builders never call each other; a caller composes a map by invoking
// several of them against the same handle. Inputs are not validated beyond
// the empty-collection guard on Location: malformed geometries and unknown
// attribute fields surface whatever failure the geometry layer or the
// browser produces.
//
// Feature collections are read-only to every builder; none of them mutates
// the caller's data.
package quickmap

import (
	"errors"

	"github.com/paulmach/orb/geojson"
)

// ErrEmptyCollection is returned by Location for a nil or empty feature
// collection.
var ErrEmptyCollection = errors.New("quickmap: empty feature collection")

// Location returns (lat, lon) of the centroid of the axis-aligned bounding
// envelope of all geometries in fc, a cheap deterministic "center of the
// study area" for initial map placement. It is intentionally not the true
// centroid of the union outline.
func Location(fc *geojson.FeatureCollection) ([2]float64, error) {
	if fc == nil || len(fc.Features) == 0 {
		return [2]float64{}, ErrEmptyCollection
	}
	bound := fc.Features[0].Geometry.Bound()
	for _, f := range fc.Features[1:] {
		bound = bound.Union(f.Geometry.Bound())
	}
	center := bound.Center()
	return [2]float64{center.Y(), center.X()}, nil
}
