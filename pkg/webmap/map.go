// Package webmap builds self-contained Leaflet map pages.
//
// A Map is a mutable handle that layers and feature groups are attached to
// with AddChild. Rendering walks the attached elements and emits the Leaflet
// JavaScript for each one into a standalone HTML page; nothing is drawn
// server side. Named elements are collected into a Leaflet layers control so
// they can be toggled in the browser.
//
// A Map and its elements are not safe for concurrent mutation. Callers must
// serialize all AddChild and Render calls against one Map.
package webmap

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// Tile layer defaults used by New.
const (
	DefaultTileURL     = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// Element is anything that can be attached to a Map or a FeatureGroup.
type Element interface {
	emit(w *jsWriter, parent string)
}

// Map is the root map handle. Children are only ever appended; the map never
// inspects their state until Render.
type Map struct {
	Title       string
	Center      [2]float64 // lat, lon
	Zoom        int
	TileURL     string
	Attribution string

	children []Element
}

// New creates a map centered at (lat, lon) with the default OSM tile layer.
func New(center [2]float64, zoom int) *Map {
	return &Map{
		Title:       "Map",
		Center:      center,
		Zoom:        zoom,
		TileURL:     DefaultTileURL,
		Attribution: DefaultAttribution,
	}
}

// AddChild attaches an element to the map.
func (m *Map) AddChild(el Element) {
	m.children = append(m.children, el)
}

// Children returns the attached elements in attach order.
func (m *Map) Children() []Element {
	return m.children
}

// Script returns the Leaflet JavaScript for the map and all attached elements.
func (m *Map) Script() (string, error) {
	w := newJSWriter()
	mapVar := w.varName("map")
	w.printf("var %s = L.map('map', {center: [%s, %s], zoom: %d});\n",
		mapVar, jsFloat(m.Center[0]), jsFloat(m.Center[1]), m.Zoom)
	w.printf("L.tileLayer(%s, {attribution: %s}).addTo(%s);\n",
		jsString(m.TileURL), jsString(m.Attribution), mapVar)

	for _, child := range m.children {
		child.emit(w, mapVar)
	}

	if len(w.overlays) > 0 {
		entries := make([]string, 0, len(w.overlays))
		for _, o := range w.overlays {
			entries = append(entries, fmt.Sprintf("%s: %s", jsString(o.name), o.ref))
		}
		w.printf("L.control.layers(null, {%s}).addTo(%s);\n", strings.Join(entries, ", "), mapVar)
	}

	return w.buf.String(), w.err
}

// Render writes the complete HTML page to w.
func (m *Map) Render(out io.Writer) error {
	script, err := m.Script()
	if err != nil {
		return err
	}
	return pageTmpl.Execute(out, pageData{
		Title:  m.Title,
		Script: template.JS(fieldsHelperJS + script),
	})
}

// HTML renders the page to a string.
func (m *Map) HTML() (string, error) {
	var sb strings.Builder
	if err := m.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type pageData struct {
	Title  string
	Script template.JS
}

// fieldsHelperJS builds tooltip/popup HTML from feature properties. Shared by
// every bound tooltip and popup on the page.
const fieldsHelperJS = `function quickmapFields(layer, fields, aliases, localize) {
  var parts = [];
  for (var i = 0; i < fields.length; i++) {
    var label = aliases.length > i ? aliases[i] : fields[i];
    var value = layer.feature.properties[fields[i]];
    if (localize && typeof value === 'number') { value = value.toLocaleString(); }
    parts.push('<b>' + label + '</b>: ' + value);
  }
  return parts.join('<br>');
}
`

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
  <style>
    html, body { height: 100%; margin: 0; }
    #map { height: 100%; width: 100%; }
  </style>
</head>
<body>
  <div id="map"></div>
  <script>
{{.Script}}  </script>
</body>
</html>
`))
