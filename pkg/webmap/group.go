package webmap

// FeatureGroup is a named, independently toggleable container of layers.
// Layers are added at construction time and never reassigned. Duplicate
// group names are not rejected; both groups render.
type FeatureGroup struct {
	name     string
	show     bool
	children []Element
}

// NewFeatureGroup creates a feature group. When show is false the group is
// registered in the layers control but not attached to the map on load.
func NewFeatureGroup(name string, show bool) *FeatureGroup {
	return &FeatureGroup{name: name, show: show}
}

// Add appends a layer to the group.
func (g *FeatureGroup) Add(el Element) {
	g.children = append(g.children, el)
}

// Name returns the caller-supplied group name.
func (g *FeatureGroup) Name() string { return g.name }

// Shown reports whether the group is attached on page load.
func (g *FeatureGroup) Shown() bool { return g.show }

// Children returns the group's layers in add order.
func (g *FeatureGroup) Children() []Element { return g.children }

func (g *FeatureGroup) emit(w *jsWriter, parent string) {
	ref := w.varName("feature_group")
	w.printf("var %s = L.featureGroup();\n", ref)
	for _, c := range g.children {
		c.emit(w, ref)
	}
	if g.show {
		w.printf("%s.addTo(%s);\n", ref, parent)
	}
	if g.name != "" {
		w.addOverlay(g.name, ref)
	}
}
