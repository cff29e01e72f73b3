package quickmap

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/quickmap-go/quickmap/pkg/webmap"
)

// HeatOptions configures HeatFromPoints.
type HeatOptions struct {
	GroupName string
	Radius    float64
	Blur      float64
}

// DefaultHeatOptions returns the HeatFromPoints defaults.
func DefaultHeatOptions() HeatOptions {
	return HeatOptions{GroupName: "Heatmap", Radius: 15, Blur: 10}
}

// heatGradient returns the fixed low-to-high intensity gradient. A fresh map
// per call, so no shared mutable state leaks between layers.
func heatGradient() map[string]string {
	return map[string]string{
		"0.3": "white",
		"0.6": "yellow",
		"0.8": "orange",
		"0.9": "red",
		"1":   "magenta",
	}
}

// HeatFromPoints extracts (lat, lon) from every point in input order and adds
// a heat layer in a hidden-by-default feature group. An empty collection
// yields a heat layer over no coordinates; it renders nothing and does not
// fail. Returns the created group.
func HeatFromPoints(m *webmap.Map, fc *geojson.FeatureCollection, opts HeatOptions) *webmap.FeatureGroup {
	fg := webmap.NewFeatureGroup(opts.GroupName, false)
	m.AddChild(fg)

	var data [][2]float64
	if fc != nil {
		data = make([][2]float64, 0, len(fc.Features))
		for _, f := range fc.Features {
			p := f.Geometry.(orb.Point)
			data = append(data, [2]float64{p.Y(), p.X()})
		}
	}

	fg.Add(&webmap.HeatLayer{
		Data:     data,
		Radius:   opts.Radius,
		Blur:     opts.Blur,
		Gradient: heatGradient(),
	})
	return fg
}
