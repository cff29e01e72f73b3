package editor

import (
	"bytes"
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quickmap-go/quickmap/internal/humastar"
	"github.com/quickmap-go/quickmap/internal/service"
)

// RenderHandler handles rendered page SSE endpoints.
type RenderHandler struct {
	humastar.Handler
	mapService    *service.MapService
	renderService *service.RenderService
}

// NewRenderHandler creates a new render handler.
func NewRenderHandler(mapService *service.MapService, renderService *service.RenderService, renderer *humastar.Renderer) *RenderHandler {
	return &RenderHandler{
		Handler:       humastar.Handler{Renderer: renderer},
		mapService:    mapService,
		renderService: renderService,
	}
}

// RegisterRoutes registers render editor routes with Huma.
func (h *RenderHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/editor/renders", h.ListRenders, huma.OperationTags("editor"))
	huma.Post(api, "/api/v1/editor/renders/generate", h.Generate, huma.OperationTags("editor"))
}

// Generate composes a configured map into a Leaflet page and streams
// progress via SSE. The map to render arrives as the rendermapid signal.
func (h *RenderHandler) Generate(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}

	mapID := signals.String("rendermapid")
	if mapID == "" {
		return nil, huma.Error400BadRequest("Map is required")
	}

	return h.Stream(func(sse humastar.SSE) {
		cfg, ok := h.mapService.Get(mapID)
		if !ok {
			sse.Error("Map not found: " + mapID)
			return
		}

		sse.Signals(map[string]any{
			"renderStatus": "Composing layers...", "renderProgress": 30,
		})

		file, err := h.renderService.Render(cfg)
		if err != nil {
			sse.Error("Render failed: " + err.Error())
			return
		}

		sse.Signals(map[string]any{
			"renderStatus":   "Complete!",
			"renderProgress": 100,
			"success":        "Map rendered: " + file,
		})

		if renders, err := h.renderService.List(); err == nil {
			sse.Patch(h.renderRenderList(renders), "#render-list")
		}
	}), nil
}

// ListRenders streams the rendered page list as SSE HTML fragments.
func (h *RenderHandler) ListRenders(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		renders, err := h.renderService.List()
		if err != nil {
			sse.Error("Failed to list renders: " + err.Error())
			return
		}
		sse.Patch(h.renderRenderList(renders), "#render-list")
	}), nil
}

// RenderCardData holds data for rendering a render card template.
type RenderCardData struct {
	Name string
	Size string
	URL  string
}

func (h *RenderHandler) renderRenderList(renders []service.RenderFile) string {
	var buf bytes.Buffer
	if len(renders) == 0 {
		h.Renderer.RenderToBuffer(&buf, "empty-state", map[string]string{
			"Title": "No Rendered Maps", "Message": "Configure a map and render it to produce a page.",
		})
	} else {
		for _, r := range renders {
			h.Renderer.RenderToBuffer(&buf, "render-card", RenderCardData{
				Name: r.Name, Size: r.Size, URL: "/renders/" + r.Name,
			})
		}
	}
	return buf.String()
}
