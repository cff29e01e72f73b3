package webmap

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func script(t *testing.T, m *Map) string {
	t.Helper()
	s, err := m.Script()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMapScriptBasics(t *testing.T) {
	m := New([2]float64{51.5, -0.1}, 12)
	s := script(t, m)

	if !strings.Contains(s, "L.map('map', {center: [51.5, -0.1], zoom: 12})") {
		t.Fatalf("missing map constructor in:\n%s", s)
	}
	if !strings.Contains(s, "L.tileLayer(") {
		t.Fatal("missing tile layer")
	}
	if strings.Contains(s, "L.control.layers") {
		t.Fatal("layers control emitted with no named overlays")
	}
}

func TestFeatureGroupVisibility(t *testing.T) {
	m := New([2]float64{0, 0}, 10)
	shown := NewFeatureGroup("Shown", true)
	hidden := NewFeatureGroup("Hidden", false)
	m.AddChild(shown)
	m.AddChild(hidden)

	s := script(t, m)
	if !strings.Contains(s, "feature_group_1.addTo(map_1);") {
		t.Fatal("shown group not attached")
	}
	if strings.Contains(s, "feature_group_2.addTo(map_1);") {
		t.Fatal("hidden group must not be attached on load")
	}
	if !strings.Contains(s, `"Shown": feature_group_1`) || !strings.Contains(s, `"Hidden": feature_group_2`) {
		t.Fatalf("both groups must be in the layers control:\n%s", s)
	}
}

func TestDuplicateGroupNamesBothRender(t *testing.T) {
	m := New([2]float64{0, 0}, 10)
	m.AddChild(NewFeatureGroup("Same", true))
	m.AddChild(NewFeatureGroup("Same", true))

	s := script(t, m)
	if !strings.Contains(s, "feature_group_1 = L.featureGroup()") ||
		!strings.Contains(s, "feature_group_2 = L.featureGroup()") {
		t.Fatalf("duplicate names must not merge:\n%s", s)
	}
}

func TestChoroplethScript(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))

	m := New([2]float64{0, 0}, 10)
	fg := NewFeatureGroup("B", true)
	fg.Add(&Choropleth{Data: fc, FillOpacity: Float(0), LineWeight: 2})
	m.AddChild(fg)

	s := script(t, m)
	if !strings.Contains(s, `"type":"FeatureCollection"`) {
		t.Fatal("geojson data not inlined")
	}
	if !strings.Contains(s, `"fillOpacity":0`) {
		t.Fatalf("zero fill opacity must be emitted explicitly:\n%s", s)
	}
	if !strings.Contains(s, `"color":"black"`) {
		t.Fatal("line color default not applied")
	}
	if !strings.Contains(s, "choropleth_1.addTo(feature_group_1);") {
		t.Fatal("choropleth not attached to its group")
	}
}

func TestGeoJSONLayerMarkerAndDecorations(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{1, 2}))

	m := New([2]float64{0, 0}, 10)
	m.AddChild(&GeoJSONLayer{
		Data:    fc,
		Name:    "pts",
		Show:    true,
		Marker:  &Circle{Radius: 6, Style: Style{FillColor: "blue", FillOpacity: Float(1)}},
		Tooltip: &Tooltip{Fields: []string{"a"}, Aliases: []string{"A"}, Localize: true},
		Popup:   &Popup{Fields: []string{"a"}},
	})

	s := script(t, m)
	if !strings.Contains(s, "pointToLayer: function (feature, latlng) { return L.circle(latlng, ") {
		t.Fatal("marker template not emitted")
	}
	if !strings.Contains(s, `geo_json_1.bindTooltip(function (layer) { return quickmapFields(layer, ["a"], ["A"], true); }`) {
		t.Fatalf("tooltip binding missing:\n%s", s)
	}
	if !strings.Contains(s, `geo_json_1.bindPopup(function (layer) { return quickmapFields(layer, ["a"], [], false); });`) {
		t.Fatalf("popup binding missing:\n%s", s)
	}
	if !strings.Contains(s, "geo_json_1.addTo(map_1);") {
		t.Fatal("shown layer not attached")
	}
}

func TestGeoJSONLayerHiddenStillBindsDecorations(t *testing.T) {
	m := New([2]float64{0, 0}, 10)
	m.AddChild(&GeoJSONLayer{Name: "pts", Show: false, Tooltip: &Tooltip{Fields: []string{}, Aliases: []string{}}})

	s := script(t, m)
	if strings.Contains(s, "geo_json_1.addTo(map_1);") {
		t.Fatal("hidden layer must not be attached on load")
	}
	if !strings.Contains(s, `quickmapFields(layer, [], [], false)`) {
		t.Fatalf("empty-field tooltip must still bind:\n%s", s)
	}
}

func TestHeatLayerScript(t *testing.T) {
	m := New([2]float64{0, 0}, 10)
	fg := NewFeatureGroup("Heat", false)
	fg.Add(&HeatLayer{
		Data:     [][2]float64{{1, 10}, {2, 20}},
		Radius:   15,
		Blur:     10,
		Gradient: map[string]string{"0.3": "white", "1": "magenta", "0.6": "yellow"},
	})
	m.AddChild(fg)

	s := script(t, m)
	if !strings.Contains(s, "L.heatLayer([[1, 10], [2, 20]], {radius: 15, blur: 10") {
		t.Fatalf("heat layer data/order wrong:\n%s", s)
	}
	// Stops sorted ascending regardless of map iteration order.
	if !strings.Contains(s, `gradient: {0.3: "white", 0.6: "yellow", 1: "magenta"}`) {
		t.Fatalf("gradient stops not sorted:\n%s", s)
	}
}

func TestCircleScript(t *testing.T) {
	m := New([2]float64{0, 0}, 10)
	fg := NewFeatureGroup("G", true)
	fg.Add(&Circle{Location: [2]float64{1.5, 2.5}, Radius: 200, Style: Style{Color: "#17cbef", Weight: 1}})
	m.AddChild(fg)

	s := script(t, m)
	if !strings.Contains(s, "L.circle([1.5, 2.5], ") {
		t.Fatalf("circle location wrong:\n%s", s)
	}
	if !strings.Contains(s, `"radius":200`) {
		t.Fatal("circle radius missing")
	}
	if !strings.Contains(s, ".addTo(feature_group_1);") {
		t.Fatal("circle not attached to group")
	}
}

func TestRenderPage(t *testing.T) {
	m := New([2]float64{51.5, -0.1}, 12)
	m.Title = "Test Map"
	m.AddChild(NewFeatureGroup("G", true))

	html, err := m.HTML()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Test Map</title>",
		"leaflet.css",
		"leaflet-heat.js",
		"function quickmapFields(",
		"L.map('map'",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}
