package quickmap

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/quickmap-go/quickmap/pkg/webmap"
)

// GraduatedCircleOptions configures GraduatedCircles.
type GraduatedCircleOptions struct {
	GroupName   string
	RadiusScale float64
	Color       string
	Show        bool
	Fill        bool
	FillColor   string
	Opacity     float64
	Stroke      bool
	Weight      float64
}

// DefaultGraduatedCircleOptions returns the GraduatedCircles defaults.
func DefaultGraduatedCircleOptions() GraduatedCircleOptions {
	return GraduatedCircleOptions{
		GroupName:   "Graduated_Circles",
		RadiusScale: 10000,
		Color:       "#17cbef",
		Fill:        true,
		FillColor:   "#17cbef",
		Opacity:     0.6,
		Stroke:      true,
		Weight:      1,
	}
}

// GraduatedCircles groups points by exact (lat, lon) equality, counts
// occurrences per location, and adds one circle per distinct location with
// radius = count * RadiusScale. Linear scaling, no cap, no floor; every
// group has at least one member, so a single occurrence yields a circle of
// radius RadiusScale. Output order is a set: circles are not emitted in
// input order.
//
// Grouping is exact-match on the coordinate pair, not proximity-based:
// near-duplicate points differing in the last bit form distinct circles.
func GraduatedCircles(m *webmap.Map, fc *geojson.FeatureCollection, opts GraduatedCircleOptions) {
	counts := countByLocation(fc)

	fg := webmap.NewFeatureGroup(opts.GroupName, opts.Show)
	m.AddChild(fg)

	for loc, n := range counts {
		fg.Add(&webmap.Circle{
			Location: loc,
			Radius:   float64(n) * opts.RadiusScale,
			Style: webmap.Style{
				Color:     opts.Color,
				Weight:    opts.Weight,
				Opacity:   webmap.Float(opts.Opacity),
				Stroke:    webmap.Bool(opts.Stroke),
				Fill:      webmap.Bool(opts.Fill),
				FillColor: opts.FillColor,
			},
		})
	}
}

// countByLocation tallies point features by their verbatim (lat, lon) pair.
func countByLocation(fc *geojson.FeatureCollection) map[[2]float64]int {
	if fc == nil {
		return nil
	}
	counts := make(map[[2]float64]int, len(fc.Features))
	for _, f := range fc.Features {
		p := f.Geometry.(orb.Point)
		counts[[2]float64{p.Y(), p.X()}]++
	}
	return counts
}
