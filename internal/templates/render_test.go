package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFragment(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRenderFragment(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "card.html",
		`{{define "card"}}<div>{{.Name}}: {{join .Kinds}}</div>{{end}}`)

	r, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Render("card", map[string]any{
		"Name":  "Overview",
		"Kinds": []string{"boundary", "heatmap"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>Overview: boundary, heatmap</div>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "card.html", `{{define "card"}}x{{end}}`)

	r, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render("missing", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestDictFunc(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "pair.html",
		`{{define "inner"}}{{.A}}-{{.B}}{{end}}{{define "pair"}}{{template "inner" dict "A" "x" "B" "y"}}{{end}}`)

	r, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Render("pair", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "x-y" {
		t.Fatalf("got %q, want x-y", got)
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "card.html", `{{define "card"}}one{{end}}`)

	r, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	writeFragment(t, dir, "card.html", `{{define "card"}}two{{end}}`)
	if err := r.Reload(dir); err != nil {
		t.Fatal(err)
	}

	got, err := r.Render("card", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "two") {
		t.Fatalf("got %q, want reloaded content", got)
	}
}
