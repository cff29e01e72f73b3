package editor

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quickmap-go/quickmap/internal/humastar"
	"github.com/quickmap-go/quickmap/internal/service"
)

// EventHandler streams resource change events to the Datastar UI via SSE.
type EventHandler struct {
	humastar.Handler
	mapService    *service.MapService
	renderService *service.RenderService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(mapService *service.MapService, renderService *service.RenderService, renderer *humastar.Renderer) *EventHandler {
	return &EventHandler{
		Handler:       humastar.Handler{Renderer: renderer},
		mapService:    mapService,
		renderService: renderService,
	}
}

func (h *EventHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/editor/events", h.Events,
		huma.OperationTags("editor"),
	)
}

func (h *EventHandler) Events(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		ch := service.DefaultBus.Subscribe()
		defer service.DefaultBus.Unsubscribe(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ch:
				switch ev.Resource {
				case service.ResourceMaps:
					mh := &MapHandler{
						Handler:    humastar.Handler{Renderer: h.Renderer},
						mapService: h.mapService,
					}
					sse.Patch(mh.renderMapList(h.mapService.List()), "#map-list")
				case service.ResourceRenders:
					rh := &RenderHandler{
						Handler:       humastar.Handler{Renderer: h.Renderer},
						renderService: h.renderService,
					}
					if renders, err := h.renderService.List(); err == nil {
						sse.Patch(rh.renderRenderList(renders), "#render-list")
					}
				}
				sse.DispatchCustomEvent("resource-changed", map[string]any{
					"resource": ev.Resource,
					"action":   ev.Action,
					"id":       ev.ID,
				})
			}
		}
	}), nil
}
