package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/quickmap-go/quickmap/internal/source"
	"github.com/quickmap-go/quickmap/pkg/quickmap"
	"github.com/quickmap-go/quickmap/pkg/webmap"
)

// RenderService composes webmap pages from map configurations and manages
// the rendered output files.
type RenderService struct {
	rendersDir string
	sources    *SourceService
}

// NewRenderService creates a new render service.
func NewRenderService(dataDir string, sources *SourceService) *RenderService {
	return &RenderService{
		rendersDir: filepath.Join(dataDir, "renders"),
		sources:    sources,
	}
}

// List returns all rendered map pages.
func (s *RenderService) List() ([]RenderFile, error) {
	entries, err := os.ReadDir(s.rendersDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderFile{}, nil
		}
		return nil, err
	}

	var files []RenderFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".html" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, RenderFile{
			Name: entry.Name(),
			Size: formatSize(info.Size()),
		})
	}

	return files, nil
}

// RendersDir returns the path to the renders directory.
func (s *RenderService) RendersDir() string {
	return s.rendersDir
}

// Compose builds the webmap for a configuration without writing it. Each
// layer spec loads its source collection and invokes the matching builder;
// a source file is loaded once per call even when several layers share it.
func (s *RenderService) Compose(cfg MapConfig) (*webmap.Map, error) {
	loaded := make(map[string]*geojson.FeatureCollection)
	load := func(name string) (*geojson.FeatureCollection, error) {
		if fc, ok := loaded[name]; ok {
			return fc, nil
		}
		fc, err := source.LoadGeoJSON(s.sources.Path(name))
		if err != nil {
			return nil, fmt.Errorf("layer source %q: %w", name, err)
		}
		loaded[name] = fc
		return fc, nil
	}

	center, err := s.center(cfg, load)
	if err != nil {
		return nil, err
	}
	zoom := cfg.Zoom
	if zoom == 0 {
		zoom = 12
	}

	m := webmap.New(center, zoom)
	m.Title = cfg.Name
	if cfg.TileURL != "" {
		m.TileURL = cfg.TileURL
	}
	if cfg.Attribution != "" {
		m.Attribution = cfg.Attribution
	}

	for i, spec := range cfg.Layers {
		fc, err := load(spec.Source)
		if err != nil {
			return nil, err
		}
		if err := addLayer(m, fc, spec); err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, spec.Kind, err)
		}
	}

	return m, nil
}

// Render composes the map and writes <id>.html into the renders directory,
// returning the file name.
func (s *RenderService) Render(cfg MapConfig) (string, error) {
	m, err := s.Compose(cfg)
	if err != nil {
		return "", err
	}
	html, err := m.HTML()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.rendersDir, 0755); err != nil {
		return "", err
	}
	id := cfg.ID
	if id == "" {
		id = generateID(cfg.Name)
	}
	filename := id + ".html"
	if err := os.WriteFile(filepath.Join(s.rendersDir, filename), []byte(html), 0644); err != nil {
		return "", err
	}

	DefaultBus.Publish(Event{Resource: ResourceRenders, Action: ActionRendered, ID: id})
	return filename, nil
}

// center resolves the initial map center: the configured one when given,
// otherwise the bounding-envelope centroid of the first layer's source.
func (s *RenderService) center(cfg MapConfig, load func(string) (*geojson.FeatureCollection, error)) ([2]float64, error) {
	if len(cfg.Center) == 2 {
		return [2]float64{cfg.Center[0], cfg.Center[1]}, nil
	}
	if len(cfg.Layers) == 0 {
		return [2]float64{}, fmt.Errorf("map %q has no center and no layers to derive one from", cfg.Name)
	}
	fc, err := load(cfg.Layers[0].Source)
	if err != nil {
		return [2]float64{}, err
	}
	center, err := quickmap.Location(fc)
	if err != nil {
		return [2]float64{}, fmt.Errorf("deriving center: %w", err)
	}
	return center, nil
}

// addLayer dispatches one layer spec to its builder, starting from the
// builder's defaults and overriding only the options the layer spec sets.
func addLayer(m *webmap.Map, fc *geojson.FeatureCollection, spec LayerSpec) error {
	switch strings.ToLower(spec.Kind) {
	case KindBoundary:
		opts := quickmap.DefaultBoundaryOptions()
		if spec.Group != "" {
			opts.GroupName = spec.Group
		}
		if spec.LineWeight != 0 {
			opts.LineWeight = spec.LineWeight
		}
		quickmap.Boundary(m, fc, opts)

	case KindLabels:
		opts := quickmap.DefaultPolyLabelOptions()
		if spec.Group != "" {
			opts.GroupName = spec.Group
		}
		if spec.LineColor != "" {
			opts.LineColor = spec.LineColor
		}
		if spec.LineWeight != 0 {
			opts.LineWeight = spec.LineWeight
		}
		opts.TooltipFields = spec.TooltipFields
		opts.TooltipAliases = spec.TooltipAlias
		quickmap.PolyLabel(m, fc, opts)

	case KindPoints:
		opts := quickmap.DefaultPointLabelOptions()
		if spec.Name != "" {
			opts.Name = spec.Name
		}
		if spec.Radius != 0 {
			opts.Radius = spec.Radius
		}
		if spec.FillColor != "" {
			opts.FillColor = spec.FillColor
		}
		if spec.FillOpacity != 0 {
			opts.FillOpacity = spec.FillOpacity
		}
		if spec.LineColor != "" {
			opts.EdgeColor = spec.LineColor
		}
		if spec.LineWeight != 0 {
			opts.LineWeight = spec.LineWeight
		}
		opts.Fields = spec.Fields
		opts.Show = spec.Show
		quickmap.PointLabel(m, fc, opts)

	case KindHeatmap:
		opts := quickmap.DefaultHeatOptions()
		if spec.Group != "" {
			opts.GroupName = spec.Group
		}
		if spec.Radius != 0 {
			opts.Radius = spec.Radius
		}
		if spec.Blur != 0 {
			opts.Blur = spec.Blur
		}
		quickmap.HeatFromPoints(m, fc, opts)

	case KindBoundaryTooltip:
		opts := quickmap.DefaultBoundaryTooltipOptions()
		if spec.Group != "" {
			opts.GroupName = spec.Group
		}
		if spec.Name != "" {
			opts.Name = spec.Name
		}
		opts.Show = spec.Show
		opts.TooltipFields = spec.TooltipFields
		opts.PopupFields = spec.PopupFields
		opts.FillOpacity = spec.FillOpacity
		if spec.FillColor != "" {
			opts.FillColor = spec.FillColor
		}
		if spec.LineWeight != 0 {
			opts.LineWeight = spec.LineWeight
		}
		if spec.LineColor != "" {
			opts.LineColor = spec.LineColor
		}
		quickmap.BoundaryTooltip(m, fc, opts)

	case KindGraduated:
		opts := quickmap.DefaultGraduatedCircleOptions()
		if spec.Group != "" {
			opts.GroupName = spec.Group
		}
		if spec.RadiusScale != 0 {
			opts.RadiusScale = spec.RadiusScale
		}
		if spec.LineColor != "" {
			opts.Color = spec.LineColor
		}
		if spec.FillColor != "" {
			opts.FillColor = spec.FillColor
		}
		if spec.Opacity != 0 {
			opts.Opacity = spec.Opacity
		}
		if spec.LineWeight != 0 {
			opts.Weight = spec.LineWeight
		}
		opts.Show = spec.Show
		quickmap.GraduatedCircles(m, fc, opts)

	default:
		return fmt.Errorf("unknown layer kind %q", spec.Kind)
	}
	return nil
}
