//go:build integration

// Integration test for the API client.
// Requires a running server: quickmap
//
// Run: go test -tags=integration ./pkg/mapclient/
package mapclient_test

import (
	"context"
	"os"
	"testing"

	"github.com/quickmap-go/quickmap/pkg/mapclient"
)

func baseURL() string {
	if u := os.Getenv("QUICKMAP_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8087"
}

func client() *mapclient.Client {
	return mapclient.New(baseURL())
}

func TestHealth(t *testing.T) {
	_, body, err := client().Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Fatalf("status=%q, want ok", body.Status)
	}
}

func TestGetInfo(t *testing.T) {
	_, body, err := client().GetInfo(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if body.Name != "quickmap" {
		t.Fatalf("name=%q, want quickmap", body.Name)
	}
}

func TestListSources(t *testing.T) {
	_, _, err := client().ListSources(context.Background())
	if err != nil {
		t.Fatal(err)
	}
}

func TestListRenders(t *testing.T) {
	_, _, err := client().ListRenders(context.Background())
	if err != nil {
		t.Fatal(err)
	}
}

func TestMapCRUD(t *testing.T) {
	c := client()
	ctx := context.Background()

	_, _, err := c.ListMaps(ctx)
	if err != nil {
		t.Fatal("list:", err)
	}

	_, created, err := c.CreateMap(ctx, mapclient.MapConfig{
		Name:   "Integration Test",
		Center: []float64{41.88, -87.62},
		Zoom:   11,
		Layers: []mapclient.LayerSpec{
			{Kind: "boundary", Source: "wards.geojson", Group: "Wards"},
		},
	})
	if err != nil {
		t.Fatal("create:", err)
	}

	_, cfg, err := c.GetMap(ctx, created.ID)
	if err != nil {
		t.Fatal("get:", err)
	}
	if cfg.Name != "Integration Test" {
		t.Fatalf("name=%q, want Integration Test", cfg.Name)
	}

	_, _, err = c.DeleteMap(ctx, created.ID)
	if err != nil {
		t.Fatal("delete:", err)
	}
}
