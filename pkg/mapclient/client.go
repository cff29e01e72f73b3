// Package mapclient is a small Go client for the quickmap REST API.
//
// It mirrors the server's request and response bodies so callers do not need
// to import internal packages.
package mapclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MapConfig describes a composed map the way the API exchanges it.
type MapConfig struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Center      []float64   `json:"center,omitempty"`
	Zoom        int         `json:"zoom,omitempty"`
	TileURL     string      `json:"tileUrl,omitempty"`
	Attribution string      `json:"attribution,omitempty"`
	Layers      []LayerSpec `json:"layers"`
}

// LayerSpec describes one layer of a map configuration.
type LayerSpec struct {
	Kind          string   `json:"kind"`
	Source        string   `json:"source"`
	Group         string   `json:"group,omitempty"`
	Name          string   `json:"name,omitempty"`
	Show          bool     `json:"show,omitempty"`
	LineColor     string   `json:"lineColor,omitempty"`
	LineWeight    float64  `json:"lineWeight,omitempty"`
	FillColor     string   `json:"fillColor,omitempty"`
	FillOpacity   float64  `json:"fillOpacity,omitempty"`
	Opacity       float64  `json:"opacity,omitempty"`
	Radius        float64  `json:"radius,omitempty"`
	Blur          float64  `json:"blur,omitempty"`
	RadiusScale   float64  `json:"radiusScale,omitempty"`
	Fields        []string `json:"fields,omitempty"`
	TooltipFields []string `json:"tooltipFields,omitempty"`
	TooltipAlias  []string `json:"tooltipAliases,omitempty"`
	PopupFields   []string `json:"popupFields,omitempty"`
}

// HealthBody is the /health response.
type HealthBody struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// InfoBody is the /api/v1/info response.
type InfoBody struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	DataDir  string   `json:"data_dir"`
	DB       bool     `json:"db"`
	Features []string `json:"features"`
}

// CreatedMapBody is the response to creating a map.
type CreatedMapBody struct {
	ID      string    `json:"id"`
	Map     MapConfig `json:"map"`
	Message string    `json:"message"`
}

// MessageBody is a generic result message.
type MessageBody struct {
	Message string `json:"message"`
}

// RenderedBody is the response to rendering a map.
type RenderedBody struct {
	File    string `json:"file"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// SourceFile describes an uploaded source file.
type SourceFile struct {
	Name     string `json:"name"`
	Size     string `json:"size"`
	FileType string `json:"fileType"`
}

// RenderFile describes a rendered map page.
type RenderFile struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// Client calls the quickmap REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8087".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// WithHTTPClient sets a custom HTTP client (timeouts, transports).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return resp, fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return resp, nil
}

// Health checks the server health endpoint.
func (c *Client) Health(ctx context.Context) (*http.Response, *HealthBody, error) {
	var body HealthBody
	resp, err := c.do(ctx, http.MethodGet, "/health", nil, &body)
	return resp, &body, err
}

// GetInfo returns service metadata.
func (c *Client) GetInfo(ctx context.Context) (*http.Response, *InfoBody, error) {
	var body InfoBody
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/info", nil, &body)
	return resp, &body, err
}

// ListMaps returns all map configurations keyed by ID.
func (c *Client) ListMaps(ctx context.Context) (*http.Response, map[string]MapConfig, error) {
	var body map[string]MapConfig
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/maps", nil, &body)
	return resp, body, err
}

// CreateMap creates a new map configuration.
func (c *Client) CreateMap(ctx context.Context, cfg MapConfig) (*http.Response, *CreatedMapBody, error) {
	var body CreatedMapBody
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/maps", cfg, &body)
	return resp, &body, err
}

// GetMap returns one map configuration.
func (c *Client) GetMap(ctx context.Context, id string) (*http.Response, *MapConfig, error) {
	var body MapConfig
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/maps/"+id, nil, &body)
	return resp, &body, err
}

// UpdateMap replaces a map configuration.
func (c *Client) UpdateMap(ctx context.Context, id string, cfg MapConfig) (*http.Response, *MapConfig, error) {
	var body MapConfig
	resp, err := c.do(ctx, http.MethodPut, "/api/v1/maps/"+id, cfg, &body)
	return resp, &body, err
}

// DeleteMap deletes a map configuration.
func (c *Client) DeleteMap(ctx context.Context, id string) (*http.Response, *MessageBody, error) {
	var body MessageBody
	resp, err := c.do(ctx, http.MethodDelete, "/api/v1/maps/"+id, nil, &body)
	return resp, &body, err
}

// RenderMap renders a configured map to an HTML page on the server.
func (c *Client) RenderMap(ctx context.Context, id string) (*http.Response, *RenderedBody, error) {
	var body RenderedBody
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/maps/"+id+"/render", nil, &body)
	return resp, &body, err
}

// ListSources returns the uploaded source files.
func (c *Client) ListSources(ctx context.Context) (*http.Response, []SourceFile, error) {
	var body []SourceFile
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/sources", nil, &body)
	return resp, body, err
}

// ListRenders returns the rendered map pages.
func (c *Client) ListRenders(ctx context.Context) (*http.Response, []RenderFile, error) {
	var body []RenderFile
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/renders", nil, &body)
	return resp, body, err
}
