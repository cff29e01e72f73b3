package quickmap

import (
	"github.com/paulmach/orb/geojson"

	"github.com/quickmap-go/quickmap/pkg/webmap"
)

// BoundaryOptions configures Boundary.
type BoundaryOptions struct {
	GroupName  string
	LineWeight float64
}

// DefaultBoundaryOptions returns the Boundary defaults.
func DefaultBoundaryOptions() BoundaryOptions {
	return BoundaryOptions{GroupName: "Boundary", LineWeight: 2}
}

// Boundary adds an outline-only polygon layer in its own feature group: zero
// fill opacity, the given line weight, no fill color. No tooltip, no popup.
func Boundary(m *webmap.Map, fc *geojson.FeatureCollection, opts BoundaryOptions) {
	fg := webmap.NewFeatureGroup(opts.GroupName, true)
	m.AddChild(fg)
	fg.Add(&webmap.Choropleth{
		Data:        fc,
		FillOpacity: webmap.Float(0),
		LineWeight:  opts.LineWeight,
	})
}

// BoundaryTooltipOptions configures BoundaryTooltip.
type BoundaryTooltipOptions struct {
	GroupName     string
	Show          bool
	TooltipFields []string
	PopupFields   []string
	FillOpacity   float64
	FillColor     string
	LineWeight    float64
	LineColor     string
	Name          string
}

// DefaultBoundaryTooltipOptions returns the BoundaryTooltip defaults.
func DefaultBoundaryTooltipOptions() BoundaryTooltipOptions {
	return BoundaryTooltipOptions{
		GroupName:  "Boundary_with_tooltip",
		LineWeight: 2,
		LineColor:  "black",
		Name:       "Boundary",
	}
}

// BoundaryTooltip adds a styled polygon layer in a feature group with the
// given initial visibility. A tooltip is attached only when tooltip fields
// are given, a popup only when popup fields are given; the two are
// independent.
func BoundaryTooltip(m *webmap.Map, fc *geojson.FeatureCollection, opts BoundaryTooltipOptions) {
	fg := webmap.NewFeatureGroup(opts.GroupName, opts.Show)
	m.AddChild(fg)

	layer := &webmap.Choropleth{
		Data:        fc,
		Name:        opts.Name,
		FillOpacity: webmap.Float(opts.FillOpacity),
		FillColor:   opts.FillColor,
		LineWeight:  opts.LineWeight,
		LineColor:   opts.LineColor,
	}
	if len(opts.TooltipFields) > 0 {
		layer.Tooltip = &webmap.Tooltip{Fields: opts.TooltipFields}
	}
	if len(opts.PopupFields) > 0 {
		layer.Popup = &webmap.Popup{Fields: opts.PopupFields}
	}
	fg.Add(layer)
}
