package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quickmap-go/quickmap/pkg/webmap"
)

const wardsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature",
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2],[0,0]]]},
     "properties": {"name": "Central"}}
  ]
}`

const incidentsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 1]}, "properties": {"month": "2024-01"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 1]}, "properties": {"month": "2024-02"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [0.5, 1.5]}, "properties": {"month": "2024-03"}}
  ]
}`

func testServices(t *testing.T) (*SourceService, *RenderService) {
	t.Helper()
	dataDir := t.TempDir()
	sources := NewSourceService(dataDir)
	if err := sources.Save("wards.geojson", strings.NewReader(wardsGeoJSON)); err != nil {
		t.Fatal(err)
	}
	if err := sources.Save("incidents.geojson", strings.NewReader(incidentsGeoJSON)); err != nil {
		t.Fatal(err)
	}
	return sources, NewRenderService(dataDir, sources)
}

func TestComposeAllKinds(t *testing.T) {
	_, renders := testServices(t)

	cfg := MapConfig{
		ID:   "overview",
		Name: "Overview",
		Layers: []LayerSpec{
			{Kind: KindBoundary, Source: "wards.geojson", Group: "Wards"},
			{Kind: KindLabels, Source: "wards.geojson", TooltipFields: []string{"name"}},
			{Kind: KindPoints, Source: "incidents.geojson", Name: "Incidents", Fields: []string{"month"}},
			{Kind: KindHeatmap, Source: "incidents.geojson", Radius: 20},
			{Kind: KindBoundaryTooltip, Source: "wards.geojson", TooltipFields: []string{"name"}},
			{Kind: KindGraduated, Source: "incidents.geojson", RadiusScale: 50},
		},
	}

	m, err := renders.Compose(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(m.Children()); n != 6 {
		t.Fatalf("map children=%d, want 6", n)
	}
	// Center derived from the first layer's 2x2 ward square.
	if m.Center != [2]float64{1, 1} {
		t.Fatalf("center=%v, want [1 1]", m.Center)
	}
	if m.Zoom != 12 {
		t.Fatalf("zoom=%d, want default 12", m.Zoom)
	}

	// The graduated layer groups the two coincident points.
	fg := m.Children()[5].(*webmap.FeatureGroup)
	if n := len(fg.Children()); n != 2 {
		t.Fatalf("graduated circles=%d, want 2", n)
	}
}

func TestComposeExplicitCenter(t *testing.T) {
	_, renders := testServices(t)
	m, err := renders.Compose(MapConfig{
		Name:   "Fixed",
		Center: []float64{51.5, -0.1},
		Zoom:   9,
		Layers: []LayerSpec{{Kind: KindBoundary, Source: "wards.geojson"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.Center != [2]float64{51.5, -0.1} {
		t.Fatalf("center=%v, want [51.5 -0.1]", m.Center)
	}
	if m.Zoom != 9 {
		t.Fatalf("zoom=%d, want 9", m.Zoom)
	}
}

func TestComposeUnknownKind(t *testing.T) {
	_, renders := testServices(t)
	_, err := renders.Compose(MapConfig{
		Name:   "Bad",
		Center: []float64{0, 0},
		Layers: []LayerSpec{{Kind: "hexbin", Source: "wards.geojson"}},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown layer kind") {
		t.Fatalf("err=%v, want unknown layer kind", err)
	}
}

func TestComposeMissingSource(t *testing.T) {
	_, renders := testServices(t)
	_, err := renders.Compose(MapConfig{
		Name:   "Missing",
		Layers: []LayerSpec{{Kind: KindBoundary, Source: "nope.geojson"}},
	})
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestRenderWritesPage(t *testing.T) {
	_, renders := testServices(t)

	filename, err := renders.Render(MapConfig{
		ID:   "overview",
		Name: "Overview",
		Layers: []LayerSpec{
			{Kind: KindBoundary, Source: "wards.geojson"},
			{Kind: KindHeatmap, Source: "incidents.geojson"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if filename != "overview.html" {
		t.Fatalf("filename=%q, want overview.html", filename)
	}

	data, err := os.ReadFile(filepath.Join(renders.RendersDir(), filename))
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	if !strings.Contains(page, "L.heatLayer(") {
		t.Fatal("rendered page missing heat layer")
	}
	if !strings.Contains(page, "L.geoJson(") {
		t.Fatal("rendered page missing boundary layer")
	}

	files, err := renders.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "overview.html" {
		t.Fatalf("renders list=%+v, want [overview.html]", files)
	}
}
