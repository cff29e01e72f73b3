package webmap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// HeatLayer renders a blurred point-density surface via leaflet.heat.
// Data order is preserved in the emitted script.
type HeatLayer struct {
	Data     [][2]float64 // (lat, lon) pairs
	Radius   float64
	Blur     float64
	Gradient map[string]string // intensity stop (e.g. "0.6") -> CSS color
}

func (h *HeatLayer) emit(w *jsWriter, parent string) {
	points := make([]string, 0, len(h.Data))
	for _, p := range h.Data {
		points = append(points, fmt.Sprintf("[%s, %s]", jsFloat(p[0]), jsFloat(p[1])))
	}

	ref := w.varName("heat_map")
	w.printf("var %s = L.heatLayer([%s], {radius: %s, blur: %s%s}).addTo(%s);\n",
		ref, strings.Join(points, ", "), jsFloat(h.Radius), jsFloat(h.Blur), h.gradientJS(), parent)
}

// gradientJS emits the gradient option with stops in ascending order, or
// nothing when no gradient is set.
func (h *HeatLayer) gradientJS() string {
	if len(h.Gradient) == 0 {
		return ""
	}
	stops := make([]string, 0, len(h.Gradient))
	for stop := range h.Gradient {
		stops = append(stops, stop)
	}
	sort.Slice(stops, func(i, j int) bool {
		a, _ := strconv.ParseFloat(stops[i], 64)
		b, _ := strconv.ParseFloat(stops[j], 64)
		return a < b
	})
	entries := make([]string, 0, len(stops))
	for _, stop := range stops {
		entries = append(entries, fmt.Sprintf("%s: %s", stop, jsString(h.Gradient[stop])))
	}
	return fmt.Sprintf(", gradient: {%s}", strings.Join(entries, ", "))
}
