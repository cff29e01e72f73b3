// Package editor contains Datastar SSE handlers for the editor UI.
package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quickmap-go/quickmap/internal/humastar"
	"github.com/quickmap-go/quickmap/internal/service"
)

// MapHandler handles map configuration SSE endpoints.
type MapHandler struct {
	humastar.Handler
	mapService *service.MapService
}

// NewMapHandler creates a new map handler.
func NewMapHandler(mapService *service.MapService, renderer *humastar.Renderer) *MapHandler {
	return &MapHandler{
		Handler:    humastar.Handler{Renderer: renderer},
		mapService: mapService,
	}
}

func (h *MapHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/editor/maps", h.ListMaps, huma.OperationTags("editor"))
	huma.Post(api, "/api/v1/editor/maps", h.CreateMap, huma.OperationTags("editor"))
	huma.Delete(api, "/api/v1/editor/maps/{id}", h.DeleteMap, huma.OperationTags("editor"))
}

func (h *MapHandler) ListMaps(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		sse.Patch(h.renderMapList(h.mapService.List()), "#map-list")
	}), nil
}

func (h *MapHandler) CreateMap(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	config, err := ParseMapConfigSignals(signals)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid layer configuration: " + err.Error())
	}

	if config.Name == "" {
		return nil, huma.Error400BadRequest("Map name is required")
	}
	if len(config.Layers) == 0 {
		return nil, huma.Error400BadRequest("At least one layer is required")
	}

	return h.Stream(func(sse humastar.SSE) {
		created, err := h.mapService.Create(config)
		if err != nil {
			sse.Error(err.Error())
			return
		}

		resetSignals := ResetMapConfigSignals()
		resetSignals["success"] = fmt.Sprintf("Map '%s' created", created.Name)
		resetSignals["_editingMap"] = false
		sse.Signals(resetSignals)

		sse.Patch(h.renderMapList(h.mapService.List()), "#map-list")
		sse.DispatchCustomEvent("map-changed", map[string]any{
			"action": "created", "id": created.ID, "name": created.Name,
		})
	}), nil
}

type DeleteMapInput struct {
	ID string `path:"id" doc:"Map ID to delete"`
}

func (h *MapHandler) DeleteMap(ctx context.Context, input *DeleteMapInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if err := h.mapService.Delete(input.ID); err != nil {
			sse.Error(err.Error())
			return
		}

		sse.RemoveElementByID("map-" + input.ID)
		sse.Success("Map deleted")
		sse.DispatchCustomEvent("map-changed", map[string]any{
			"action": "deleted", "id": input.ID,
		})
	}), nil
}

// ParseMapConfigSignals assembles a map configuration from editor form
// signals. Signal names are lowercase due to data-bind behavior; the layer
// list arrives as a JSON array in the maplayers signal.
func ParseMapConfigSignals(signals humastar.Signals) (service.MapConfig, error) {
	config := service.MapConfig{
		Name:        signals.String("mapname"),
		Zoom:        signals.Int("mapzoom"),
		TileURL:     signals.String("maptileurl"),
		Attribution: signals.String("mapattribution"),
	}
	if signals.Has("mapcenterlat") && signals.Has("mapcenterlon") {
		config.Center = []float64{signals.Float("mapcenterlat"), signals.Float("mapcenterlon")}
	}
	if raw := signals.String("maplayers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &config.Layers); err != nil {
			return service.MapConfig{}, err
		}
	}
	return config, nil
}

// ResetMapConfigSignals returns signals that clear the map editor form.
func ResetMapConfigSignals() map[string]any {
	return map[string]any{
		"mapname":        "",
		"mapzoom":        0,
		"maptileurl":     "",
		"mapattribution": "",
		"mapcenterlat":   0,
		"mapcenterlon":   0,
		"maplayers":      "",
	}
}

// MapCardData holds data for rendering a map card template.
type MapCardData struct {
	ID         string
	Name       string
	Zoom       int
	Kinds      []string
	ConfigJSON template.JS
}

func (h *MapHandler) renderMapList(maps map[string]service.MapConfig) string {
	var buf bytes.Buffer
	if len(maps) == 0 {
		h.Renderer.RenderToBuffer(&buf, "empty-state", map[string]string{
			"Title": "No maps configured", "Message": "Add a map to get started",
		})
	} else {
		for id, cfg := range maps {
			kinds := make([]string, 0, len(cfg.Layers))
			for _, layer := range cfg.Layers {
				kinds = append(kinds, layer.Kind)
			}
			configJSON, _ := json.Marshal(cfg)
			h.Renderer.RenderToBuffer(&buf, "map-card", MapCardData{
				ID: id, Name: cfg.Name, Zoom: cfg.Zoom,
				Kinds: kinds, ConfigJSON: template.JS(configJSON),
			})
		}
	}
	return buf.String()
}
