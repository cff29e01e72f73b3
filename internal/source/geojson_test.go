package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1.5, 2.5]},
     "properties": {"name": "a"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [3, 4]},
     "properties": {"name": "b"}}
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.geojson")
	if err := os.WriteFile(path, []byte(sampleGeoJSON), 0644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadGeoJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(fc.Features); n != 2 {
		t.Fatalf("features=%d, want 2", n)
	}
	p := fc.Features[0].Geometry.(orb.Point)
	if p != (orb.Point{1.5, 2.5}) {
		t.Fatalf("point=%v, want [1.5 2.5]", p)
	}
	if name := fc.Features[1].Properties["name"]; name != "b" {
		t.Fatalf("name=%q, want b", name)
	}
}

func TestLoadGeoJSONMissingFile(t *testing.T) {
	if _, err := LoadGeoJSON(filepath.Join(t.TempDir(), "nope.geojson")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadGeoJSONInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.geojson")
	if err := os.WriteFile(path, []byte("{not geojson"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGeoJSON(path); err == nil {
		t.Fatal("expected error for invalid geojson")
	}
}
