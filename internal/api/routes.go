// Package api defines the Huma API routes and handlers.
package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quickmap-go/quickmap/internal/service"
)

// Services holds the service dependencies for API handlers.
type Services struct {
	Map    *service.MapService
	Source *service.SourceService
	Render *service.RenderService
}

// RegisterRoutes registers all REST API routes with Huma.
func RegisterRoutes(api huma.API, svc *Services) {
	huma.AutoRegister(api, NewAPIHandler(svc))
}

// Types

type IDInput struct {
	ID string `path:"id" doc:"Map ID" example:"crime-overview"`
}

type MapOutput struct {
	Body service.MapConfig
}

type MapsOutput struct {
	Body map[string]service.MapConfig
}

type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type CreatedMapBody struct {
	ID      string            `json:"id" doc:"Generated map ID"`
	Map     service.MapConfig `json:"map" doc:"Created map configuration"`
	Message string            `json:"message" doc:"Result message"`
}

type RenderedBody struct {
	File    string `json:"file" doc:"Rendered HTML file name"`
	URL     string `json:"url" doc:"Path the rendered page is served at"`
	Message string `json:"message" doc:"Result message"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// APIHandler holds all REST API handlers. Methods named Register* are
// auto-discovered by huma.AutoRegister.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

// RegisterMaps registers map configuration CRUD and render routes.
func (h *APIHandler) RegisterMaps(api huma.API) {
	huma.Get(api, "/api/v1/maps", h.GetMaps, huma.OperationTags("maps"))
	huma.Post(api, "/api/v1/maps", h.CreateMap, huma.OperationTags("maps"))
	huma.Get(api, "/api/v1/maps/{id}", h.GetMap, huma.OperationTags("maps"))
	huma.Put(api, "/api/v1/maps/{id}", h.PutMap, huma.OperationTags("maps"))
	huma.Delete(api, "/api/v1/maps/{id}", h.DeleteMap, huma.OperationTags("maps"))
	huma.Post(api, "/api/v1/maps/{id}/render", h.RenderMap, huma.OperationTags("maps"))
}

// RegisterSources registers source listing routes.
func (h *APIHandler) RegisterSources(api huma.API) {
	huma.Get(api, "/api/v1/sources", h.GetSources, huma.OperationTags("sources"))
}

// RegisterRenders registers rendered page listing routes.
func (h *APIHandler) RegisterRenders(api huma.API) {
	huma.Get(api, "/api/v1/renders", h.GetRenders, huma.OperationTags("renders"))
}

// Handlers

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

func (h *APIHandler) GetMaps(ctx context.Context, input *struct{}) (*MapsOutput, error) {
	if h.svc == nil || h.svc.Map == nil {
		return &MapsOutput{Body: map[string]service.MapConfig{}}, nil
	}
	return &MapsOutput{Body: h.svc.Map.List()}, nil
}

func (h *APIHandler) CreateMap(ctx context.Context, input *struct{ Body service.MapConfig }) (*struct{ Body CreatedMapBody }, error) {
	if h.svc == nil || h.svc.Map == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	created, err := h.svc.Map.Create(input.Body)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &struct{ Body CreatedMapBody }{Body: CreatedMapBody{
		ID: created.ID, Map: created, Message: "Map created",
	}}, nil
}

func (h *APIHandler) GetMap(ctx context.Context, input *IDInput) (*MapOutput, error) {
	if h.svc == nil || h.svc.Map == nil {
		return nil, huma.Error404NotFound("service not available")
	}
	cfg, ok := h.svc.Map.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("map not found")
	}
	return &MapOutput{Body: cfg}, nil
}

func (h *APIHandler) PutMap(ctx context.Context, input *struct {
	IDInput
	Body service.MapConfig
}) (*MapOutput, error) {
	if h.svc == nil || h.svc.Map == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	updated, err := h.svc.Map.Update(input.ID, input.Body)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &MapOutput{Body: updated}, nil
}

func (h *APIHandler) DeleteMap(ctx context.Context, input *IDInput) (*struct{ Body MessageBody }, error) {
	if h.svc == nil || h.svc.Map == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	if err := h.svc.Map.Delete(input.ID); err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Map deleted"}}, nil
}

// RenderMap composes the map's layers into a Leaflet page and writes it to
// the renders directory.
func (h *APIHandler) RenderMap(ctx context.Context, input *IDInput) (*struct{ Body RenderedBody }, error) {
	if h.svc == nil || h.svc.Map == nil || h.svc.Render == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	cfg, ok := h.svc.Map.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("map not found")
	}
	file, err := h.svc.Render.Render(cfg)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &struct{ Body RenderedBody }{Body: RenderedBody{
		File: file, URL: "/renders/" + file, Message: "Map rendered",
	}}, nil
}

func (h *APIHandler) GetSources(ctx context.Context, input *struct{}) (*struct{ Body []service.SourceFile }, error) {
	if h.svc == nil || h.svc.Source == nil {
		return &struct{ Body []service.SourceFile }{Body: []service.SourceFile{}}, nil
	}
	sources, err := h.svc.Source.List()
	if err != nil {
		return &struct{ Body []service.SourceFile }{Body: []service.SourceFile{}}, nil
	}
	return &struct{ Body []service.SourceFile }{Body: sources}, nil
}

func (h *APIHandler) GetRenders(ctx context.Context, input *struct{}) (*struct{ Body []service.RenderFile }, error) {
	if h.svc == nil || h.svc.Render == nil {
		return &struct{ Body []service.RenderFile }{Body: []service.RenderFile{}}, nil
	}
	renders, err := h.svc.Render.List()
	if err != nil {
		return &struct{ Body []service.RenderFile }{Body: []service.RenderFile{}}, nil
	}
	return &struct{ Body []service.RenderFile }{Body: renders}, nil
}
