package webmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// jsWriter accumulates the generated script, hands out unique variable names,
// and tracks named overlays for the layers control. The first encoding error
// is kept and surfaced from Map.Render.
type jsWriter struct {
	buf      bytes.Buffer
	seq      map[string]int
	overlays []overlayEntry
	err      error
}

type overlayEntry struct {
	name string
	ref  string
}

func newJSWriter() *jsWriter {
	return &jsWriter{seq: make(map[string]int)}
}

func (w *jsWriter) varName(prefix string) string {
	w.seq[prefix]++
	return fmt.Sprintf("%s_%d", prefix, w.seq[prefix])
}

func (w *jsWriter) printf(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
}

func (w *jsWriter) addOverlay(name, ref string) {
	w.overlays = append(w.overlays, overlayEntry{name: name, ref: ref})
}

func (w *jsWriter) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}

// fcJSON marshals a feature collection for inlining into the script.
func (w *jsWriter) fcJSON(fc *geojson.FeatureCollection) string {
	if fc == nil {
		fc = geojson.NewFeatureCollection()
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		w.setErr(fmt.Errorf("encoding geojson: %w", err))
		return "null"
	}
	return string(data)
}

// jsString returns s as a quoted, escaped JS string literal.
func jsString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

// jsStrings returns ss as a JS array literal; nil becomes [].
func jsStrings(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	data, _ := json.Marshal(ss)
	return string(data)
}

func jsFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
