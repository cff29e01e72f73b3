package webmap

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// Style holds the subset of Leaflet path options the layer constructors set.
// Zero-value opacities and flags must be distinguishable from unset ones, so
// those fields are pointers; use Float and Bool to fill them.
type Style struct {
	Color       string   `json:"color,omitempty"`
	Weight      float64  `json:"weight,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
	Stroke      *bool    `json:"stroke,omitempty"`
	Fill        *bool    `json:"fill,omitempty"`
	FillColor   string   `json:"fillColor,omitempty"`
	FillOpacity *float64 `json:"fillOpacity,omitempty"`
}

// Float returns a pointer to v, for optional Style fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for optional Style fields.
func Bool(v bool) *bool { return &v }

func (s Style) js() string {
	data, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Choropleth is a filled-region polygon layer. Line and fill styling follow
// the usual choropleth defaults (black hairline outline, blue fill) when the
// corresponding fields are left unset; the builders mostly use it with the
// fill dialed down to an outline.
type Choropleth struct {
	Data        *geojson.FeatureCollection
	Name        string
	FillColor   string
	FillOpacity *float64
	LineColor   string
	LineWeight  float64
	LineOpacity *float64
	Tooltip     *Tooltip
	Popup       *Popup
}

func (c *Choropleth) emit(w *jsWriter, parent string) {
	lineColor := c.LineColor
	if lineColor == "" {
		lineColor = "black"
	}
	lineWeight := c.LineWeight
	if lineWeight == 0 {
		lineWeight = 1
	}
	lineOpacity := c.LineOpacity
	if lineOpacity == nil {
		lineOpacity = Float(1)
	}
	fillOpacity := c.FillOpacity
	if fillOpacity == nil {
		fillOpacity = Float(0.6)
	}
	style := Style{
		Color:       lineColor,
		Weight:      lineWeight,
		Opacity:     lineOpacity,
		FillColor:   c.FillColor,
		FillOpacity: fillOpacity,
	}
	if c.FillColor == "" {
		style.Fill = Bool(false)
	}

	ref := w.varName("choropleth")
	w.printf("var %s = L.geoJson(%s, {style: function (feature) { return %s; }});\n",
		ref, w.fcJSON(c.Data), style.js())
	if c.Tooltip != nil {
		c.Tooltip.bind(w, ref)
	}
	if c.Popup != nil {
		c.Popup.bind(w, ref)
	}
	w.printf("%s.addTo(%s);\n", ref, parent)
	if c.Name != "" {
		w.addOverlay(c.Name, ref)
	}
}

// GeoJSONLayer is a GeoJSON feature layer with an optional fixed style,
// optional circle rendering for point features, and optional tooltip/popup
// decorations. A named layer participates in the layers control; Show
// controls whether it is attached on page load.
type GeoJSONLayer struct {
	Data    *geojson.FeatureCollection
	Name    string
	Show    bool
	Style   *Style
	Marker  *Circle // template for point features; its Location is ignored
	Tooltip *Tooltip
	Popup   *Popup
}

func (l *GeoJSONLayer) emit(w *jsWriter, parent string) {
	var opts []string
	if l.Style != nil {
		opts = append(opts, fmt.Sprintf("style: function (feature) { return %s; }", l.Style.js()))
	}
	if l.Marker != nil {
		opts = append(opts, fmt.Sprintf(
			"pointToLayer: function (feature, latlng) { return L.circle(latlng, %s); }",
			l.Marker.optionsJS()))
	}

	ref := w.varName("geo_json")
	w.printf("var %s = L.geoJson(%s, {%s});\n", ref, w.fcJSON(l.Data), strings.Join(opts, ", "))
	if l.Tooltip != nil {
		l.Tooltip.bind(w, ref)
	}
	if l.Popup != nil {
		l.Popup.bind(w, ref)
	}
	if l.Show {
		w.printf("%s.addTo(%s);\n", ref, parent)
	}
	if l.Name != "" {
		w.addOverlay(l.Name, ref)
	}
}

// Circle is a single circle at a fixed location, radius in meters.
type Circle struct {
	Location [2]float64 // lat, lon
	Radius   float64
	Style    Style
}

func (c *Circle) optionsJS() string {
	opts := struct {
		Radius float64 `json:"radius"`
		Style
	}{Radius: c.Radius, Style: c.Style}
	data, err := json.Marshal(opts)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func (c *Circle) emit(w *jsWriter, parent string) {
	ref := w.varName("circle")
	w.printf("var %s = L.circle([%s, %s], %s).addTo(%s);\n",
		ref, jsFloat(c.Location[0]), jsFloat(c.Location[1]), c.optionsJS(), parent)
}
