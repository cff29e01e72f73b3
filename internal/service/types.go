// Package service contains business logic for the quickmap platform.
package service

// MapConfig is a declarative map composition: base map placement plus an
// ordered list of layer specs, each naming a builder and a source file.
// Huma reads the tags for OpenAPI docs and validation; the same struct is
// accepted as YAML by the render subcommand.
type MapConfig struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty" doc:"Unique map identifier" example:"crime_overview"`
	Name        string      `json:"name" yaml:"name" required:"true" minLength:"1" maxLength:"100" doc:"Display name" example:"Crime Overview"`
	Center      []float64   `json:"center,omitempty" yaml:"center,omitempty" minItems:"2" maxItems:"2" doc:"Initial [lat, lon]; derived from the first layer's extent when omitted"`
	Zoom        int         `json:"zoom,omitempty" yaml:"zoom,omitempty" minimum:"1" maximum:"19" default:"12" doc:"Initial zoom level"`
	TileURL     string      `json:"tileUrl,omitempty" yaml:"tileUrl,omitempty" doc:"Tile layer URL template"`
	Attribution string      `json:"attribution,omitempty" yaml:"attribution,omitempty" doc:"Tile layer attribution"`
	Layers      []LayerSpec `json:"layers,omitempty" yaml:"layers,omitempty" doc:"Layers composed onto the map, in order"`
}

// LayerSpec selects one layer builder and its options. Only the fields
// relevant to the chosen kind are read; the rest are ignored.
type LayerSpec struct {
	Kind          string   `json:"kind" yaml:"kind" required:"true" enum:"boundary,labels,points,heatmap,boundary_tooltip,graduated" doc:"Builder used for this layer" example:"boundary"`
	Source        string   `json:"source" yaml:"source" required:"true" doc:"GeoJSON source file name" example:"wards.geojson"`
	Group         string   `json:"group,omitempty" yaml:"group,omitempty" doc:"Feature group name"`
	Name          string   `json:"name,omitempty" yaml:"name,omitempty" doc:"Layer name (points, boundary_tooltip)"`
	Show          bool     `json:"show,omitempty" yaml:"show,omitempty" doc:"Visible when the page loads"`
	LineColor     string   `json:"lineColor,omitempty" yaml:"lineColor,omitempty" doc:"Line color (CSS)" example:"black"`
	LineWeight    float64  `json:"lineWeight,omitempty" yaml:"lineWeight,omitempty" doc:"Line width"`
	FillColor     string   `json:"fillColor,omitempty" yaml:"fillColor,omitempty" doc:"Fill color (CSS)"`
	FillOpacity   float64  `json:"fillOpacity,omitempty" yaml:"fillOpacity,omitempty" minimum:"0" maximum:"1" doc:"Fill opacity (0-1)"`
	Opacity       float64  `json:"opacity,omitempty" yaml:"opacity,omitempty" minimum:"0" maximum:"1" doc:"Stroke opacity (graduated)"`
	Radius        float64  `json:"radius,omitempty" yaml:"radius,omitempty" doc:"Marker radius (points) or heat radius (heatmap)"`
	Blur          float64  `json:"blur,omitempty" yaml:"blur,omitempty" doc:"Heat blur (heatmap)"`
	RadiusScale   float64  `json:"radiusScale,omitempty" yaml:"radiusScale,omitempty" doc:"Circle radius per point count (graduated)"`
	Fields        []string `json:"fields,omitempty" yaml:"fields,omitempty" doc:"Attribute fields for tooltip and popup (points)"`
	TooltipFields []string `json:"tooltipFields,omitempty" yaml:"tooltipFields,omitempty" doc:"Attribute fields shown on hover"`
	TooltipAlias  []string `json:"tooltipAliases,omitempty" yaml:"tooltipAliases,omitempty" doc:"Display aliases for tooltip fields"`
	PopupFields   []string `json:"popupFields,omitempty" yaml:"popupFields,omitempty" doc:"Attribute fields shown on click"`
}

// Layer spec kinds, one per builder.
const (
	KindBoundary        = "boundary"
	KindLabels          = "labels"
	KindPoints          = "points"
	KindHeatmap         = "heatmap"
	KindBoundaryTooltip = "boundary_tooltip"
	KindGraduated       = "graduated"
)

// SourceFile represents a source data file.
type SourceFile struct {
	Name     string `json:"name" doc:"File name" example:"wards.geojson"`
	Size     string `json:"size" doc:"Human-readable file size" example:"1.2 MB"`
	FileType string `json:"fileType" doc:"File type: GeoJSON or GeoParquet" example:"GeoJSON"`
}

// RenderFile represents a rendered map page.
type RenderFile struct {
	Name string `json:"name" doc:"Rendered HTML file name" example:"crime_overview.html"`
	Size string `json:"size" doc:"Human-readable file size" example:"340 KB"`
}
