package service

import (
	"testing"
)

func TestMapServiceCRUD(t *testing.T) {
	s := NewMapService(t.TempDir())

	created, err := s.Create(MapConfig{
		Name: "Crime Overview",
		Zoom: 11,
		Layers: []LayerSpec{
			{Kind: KindBoundary, Source: "wards.geojson", Group: "Wards"},
		},
	})
	if err != nil {
		t.Fatal("create:", err)
	}
	if created.ID != "crime_overview" {
		t.Fatalf("id=%q, want crime_overview", created.ID)
	}

	got, ok := s.Get("crime_overview")
	if !ok {
		t.Fatal("get: map not found")
	}
	if got.Name != "Crime Overview" {
		t.Fatalf("name=%q, want Crime Overview", got.Name)
	}
	if len(got.Layers) != 1 || got.Layers[0].Kind != KindBoundary {
		t.Fatalf("layers=%+v, want one boundary layer", got.Layers)
	}

	if _, err := s.Create(MapConfig{Name: "Crime Overview"}); err == nil {
		t.Fatal("duplicate ID must be rejected")
	}

	got.Zoom = 14
	updated, err := s.Update("crime_overview", got)
	if err != nil {
		t.Fatal("update:", err)
	}
	if updated.Zoom != 14 {
		t.Fatalf("zoom=%d, want 14", updated.Zoom)
	}

	if err := s.Delete("crime_overview"); err != nil {
		t.Fatal("delete:", err)
	}
	if _, ok := s.Get("crime_overview"); ok {
		t.Fatal("map still present after delete")
	}
	if err := s.Delete("crime_overview"); err == nil {
		t.Fatal("deleting a missing map must fail")
	}
}

func TestMapServicePersistence(t *testing.T) {
	dir := t.TempDir()

	s1 := NewMapService(dir)
	if _, err := s1.Create(MapConfig{Name: "Persisted"}); err != nil {
		t.Fatal(err)
	}

	s2 := NewMapService(dir)
	if _, ok := s2.Get("persisted"); !ok {
		t.Fatal("map not reloaded from disk")
	}
}

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Crime Overview", "crime_overview"},
		{"Wards 2024!", "wards_2024"},
		{"already_ok", "already_ok"},
	}
	for _, tt := range tests {
		if got := generateID(tt.name); got != tt.want {
			t.Fatalf("generateID(%q)=%q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEventBusPublishesMapChanges(t *testing.T) {
	s := NewMapService(t.TempDir())
	ch := DefaultBus.Subscribe()
	defer DefaultBus.Unsubscribe(ch)

	if _, err := s.Create(MapConfig{Name: "Evented"}); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-ch:
		if ev.Resource != ResourceMaps || ev.Action != ActionCreated || ev.ID != "evented" {
			t.Fatalf("event=%+v, want maps/created/evented", ev)
		}
	default:
		t.Fatal("no event published on create")
	}
}
