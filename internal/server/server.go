// Package server wires the quickmap HTTP server: REST API, editor SSE
// routes, and the rendered map pages.
package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/quickmap-go/quickmap/internal/api"
	"github.com/quickmap-go/quickmap/internal/api/editor"
	"github.com/quickmap-go/quickmap/internal/service"
	"github.com/quickmap-go/quickmap/internal/source"
	"github.com/quickmap-go/quickmap/internal/templates"
)

// Config holds the server configuration.
type Config struct {
	Host    string
	Port    string
	DataDir string
	WebDir  string // Path to web/ directory for static files and templates
}

// Server is the quickmap HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	db       *sql.DB
	services *api.Services
	renderer *templates.Renderer
}

// New creates a new quickmap server.
func New(cfg Config) *Server {
	mux := http.NewServeMux()

	// Create Huma API with humago (pure stdlib) adapter
	humaConfig := huma.DefaultConfig("quickmap API", "1.0.0")
	humaConfig.Info.Description = "Map composition API for turning GeoJSON sources into Leaflet pages."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	// Disable $schema property in responses (cleaner JSON)
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	humaConfig.Transformers = append(humaConfig.Transformers, api.LinkTransformer())

	humaAPI := humago.New(mux, humaConfig)

	// Initialize services
	sources := service.NewSourceService(cfg.DataDir)
	services := &api.Services{
		Map:    service.NewMapService(cfg.DataDir),
		Source: sources,
		Render: service.NewRenderService(cfg.DataDir, sources),
	}

	// Initialize template renderer for editor SSE handlers
	var renderer *templates.Renderer
	if cfg.WebDir != "" {
		fragmentsDir := filepath.Join(cfg.WebDir, "templates", "fragments")
		if r, err := templates.New(fragmentsDir); err == nil {
			renderer = r
			fmt.Printf("Loaded fragment templates from %s\n", fragmentsDir)
		}
	}

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humaAPI,
		services: services,
		renderer: renderer,
	}

	// Initialize DuckDB connection
	conn, err := source.OpenDB(source.DBConfig{
		DataDir: cfg.DataDir,
		DBName:  "quickmap",
	})
	if err == nil {
		s.db = conn
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// OpenAPI returns the generated API description.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// Close closes server resources.
func (s *Server) Close() error {
	return source.CloseDB()
}

func (s *Server) routes() {
	// Register Huma REST API routes (OpenAPI-documented JSON endpoints)
	api.RegisterRoutes(s.humaAPI, s.services)

	infoHandler := api.NewInfoHandler(s.config.DataDir, s.db != nil)
	infoHandler.RegisterRoutes(s.humaAPI)

	dbHandler := api.NewDBHandler(s.db)
	dbHandler.RegisterRoutes(s.humaAPI)

	// Register Editor SSE routes using Huma + Datastar SDK
	if s.renderer != nil {
		mapHandler := editor.NewMapHandler(s.services.Map, s.renderer)
		mapHandler.RegisterRoutes(s.humaAPI)

		sourceHandler := editor.NewSourceHandler(s.services.Source, s.renderer)
		sourceHandler.RegisterRoutes(s.humaAPI)

		renderHandler := editor.NewRenderHandler(s.services.Map, s.services.Render, s.renderer)
		renderHandler.RegisterRoutes(s.humaAPI)

		eventHandler := editor.NewEventHandler(s.services.Map, s.services.Render, s.renderer)
		eventHandler.RegisterRoutes(s.humaAPI)
	}

	// Static files and rendered map pages
	if s.config.WebDir != "" {
		staticDir := filepath.Join(s.config.WebDir, "static")
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}
	s.mux.Handle("/renders/", http.StripPrefix("/renders/",
		http.FileServer(http.Dir(s.services.Render.RendersDir()))))

	// Page routes
	s.mux.HandleFunc("/editor", s.handleEditor)
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "quickmap",
		"status":  "running",
	})
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(s.config.WebDir, "templates", "editor.html")
	http.ServeFile(w, r, templatePath)
}
