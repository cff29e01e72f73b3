package webmap

// Tooltip is a hover decoration exposing named attribute fields. Aliases
// relabel fields positionally; missing aliases fall back to the field name.
// A tooltip with empty field and alias lists still binds and triggers, it
// just shows nothing.
type Tooltip struct {
	Fields   []string
	Aliases  []string
	Localize bool
}

func (t *Tooltip) bind(w *jsWriter, target string) {
	w.printf("%s.bindTooltip(function (layer) { return quickmapFields(layer, %s, %s, %t); }, {sticky: true});\n",
		target, jsStrings(t.Fields), jsStrings(t.Aliases), t.Localize)
}

// Popup is the click-triggered counterpart of Tooltip. Field names double as
// labels.
type Popup struct {
	Fields []string
}

func (p *Popup) bind(w *jsWriter, target string) {
	w.printf("%s.bindPopup(function (layer) { return quickmapFields(layer, %s, [], false); });\n",
		target, jsStrings(p.Fields))
}
