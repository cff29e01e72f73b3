package quickmap

import (
	"github.com/paulmach/orb/geojson"

	"github.com/quickmap-go/quickmap/pkg/webmap"
)

// PolyLabelOptions configures PolyLabel.
type PolyLabelOptions struct {
	GroupName      string
	LineColor      string
	LineWeight     float64
	TooltipFields  []string
	TooltipAliases []string
}

// DefaultPolyLabelOptions returns the PolyLabel defaults.
func DefaultPolyLabelOptions() PolyLabelOptions {
	return PolyLabelOptions{GroupName: "Feature Group", LineColor: "black", LineWeight: 1.5}
}

// PolyLabel adds a feature group with two stacked polygon layers: a visible
// outline styled with the given line color and weight, and a fully
// transparent layer whose only job is to carry the hover tooltip. The split
// keeps tooltip hit-testing independent of the rendered stroke shape.
//
// With no fields given, the tooltip is still attached with empty field and
// alias lists; it triggers but shows nothing.
func PolyLabel(m *webmap.Map, fc *geojson.FeatureCollection, opts PolyLabelOptions) {
	fg := webmap.NewFeatureGroup(opts.GroupName, true)
	m.AddChild(fg)

	fg.Add(&webmap.GeoJSONLayer{
		Data: fc,
		Show: true,
		Style: &webmap.Style{
			Color:       opts.LineColor,
			Weight:      opts.LineWeight,
			FillOpacity: webmap.Float(0),
		},
	})

	fields := opts.TooltipFields
	if fields == nil {
		fields = []string{}
	}
	aliases := opts.TooltipAliases
	if aliases == nil {
		aliases = []string{}
	}
	fg.Add(&webmap.GeoJSONLayer{
		Data: fc,
		Show: true,
		Style: &webmap.Style{
			Color:     "transparent",
			FillColor: "transparent",
		},
		Tooltip: &webmap.Tooltip{Fields: fields, Aliases: aliases, Localize: true},
	})
}

// PointLabelOptions configures PointLabel.
type PointLabelOptions struct {
	Name        string
	Radius      float64
	FillColor   string
	FillOpacity float64
	EdgeColor   string
	LineWeight  float64
	Fields      []string
	Show        bool
}

// DefaultPointLabelOptions returns the PointLabel defaults.
func DefaultPointLabelOptions() PointLabelOptions {
	return PointLabelOptions{
		Name:        "Points",
		Radius:      6,
		FillColor:   "blue",
		FillOpacity: 1,
		EdgeColor:   "blue",
		LineWeight:  1,
	}
}

// PointLabel adds one circle-marker layer carrying a tooltip and a popup
// over the same fields, attached directly to the map (no wrapping group)
// with the given initial visibility. The created layer is returned so the
// caller can compose it further.
func PointLabel(m *webmap.Map, fc *geojson.FeatureCollection, opts PointLabelOptions) *webmap.GeoJSONLayer {
	layer := &webmap.GeoJSONLayer{
		Data: fc,
		Name: opts.Name,
		Show: opts.Show,
		Marker: &webmap.Circle{
			Radius: opts.Radius,
			Style: webmap.Style{
				Color:       opts.EdgeColor,
				Weight:      opts.LineWeight,
				FillColor:   opts.FillColor,
				FillOpacity: webmap.Float(opts.FillOpacity),
			},
		},
		Tooltip: &webmap.Tooltip{Fields: opts.Fields},
		Popup:   &webmap.Popup{Fields: opts.Fields},
	}
	m.AddChild(layer)
	return layer
}
