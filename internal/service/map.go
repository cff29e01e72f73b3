package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MapService manages map compositions.
type MapService struct {
	dataDir string
	maps    map[string]MapConfig
	mu      sync.RWMutex
}

// NewMapService creates a new map service.
func NewMapService(dataDir string) *MapService {
	s := &MapService{
		dataDir: dataDir,
		maps:    make(map[string]MapConfig),
	}
	s.loadFromDisk()
	return s
}

// List returns all map compositions.
func (s *MapService) List() map[string]MapConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]MapConfig, len(s.maps))
	for k, v := range s.maps {
		result[k] = v
	}
	return result
}

// Get returns a map composition by ID.
func (s *MapService) Get(id string) (MapConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.maps[id]
	return cfg, ok
}

// Create adds a new map composition.
func (s *MapService) Create(cfg MapConfig) (MapConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Generate ID from name if not provided
	if cfg.ID == "" {
		cfg.ID = generateID(cfg.Name)
	}

	if _, exists := s.maps[cfg.ID]; exists {
		return MapConfig{}, fmt.Errorf("map with ID %q already exists", cfg.ID)
	}

	s.maps[cfg.ID] = cfg
	if err := s.saveToDisk(); err != nil {
		return MapConfig{}, err
	}

	DefaultBus.Publish(Event{Resource: ResourceMaps, Action: ActionCreated, ID: cfg.ID})
	return cfg, nil
}

// Update replaces a map composition by ID.
func (s *MapService) Update(id string, cfg MapConfig) (MapConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.maps[id]; !exists {
		return MapConfig{}, fmt.Errorf("map %q not found", id)
	}

	cfg.ID = id
	s.maps[id] = cfg
	if err := s.saveToDisk(); err != nil {
		return MapConfig{}, err
	}

	DefaultBus.Publish(Event{Resource: ResourceMaps, Action: ActionUpdated, ID: id})
	return cfg, nil
}

// Delete removes a map composition by ID.
func (s *MapService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.maps[id]; !exists {
		return fmt.Errorf("map %q not found", id)
	}

	delete(s.maps, id)
	if err := s.saveToDisk(); err != nil {
		return err
	}

	DefaultBus.Publish(Event{Resource: ResourceMaps, Action: ActionDeleted, ID: id})
	return nil
}

// configFile returns the path to the maps config file.
func (s *MapService) configFile() string {
	return filepath.Join(s.dataDir, "maps.json")
}

// loadFromDisk loads map compositions from disk.
func (s *MapService) loadFromDisk() {
	data, err := os.ReadFile(s.configFile())
	if err != nil {
		return // File doesn't exist yet, start empty
	}

	var maps map[string]MapConfig
	if err := json.Unmarshal(data, &maps); err != nil {
		return // Invalid JSON, start empty
	}

	s.maps = maps
}

// saveToDisk persists map compositions to disk.
func (s *MapService) saveToDisk() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.maps, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.configFile(), data, 0644)
}

// generateID creates a URL-safe ID from a name.
func generateID(name string) string {
	id := strings.ToLower(name)
	id = strings.ReplaceAll(id, " ", "_")
	// Remove any characters that aren't alphanumeric or underscore
	var result strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
