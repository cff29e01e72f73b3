package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SourceService manages source data files.
type SourceService struct {
	sourcesDir string
}

// NewSourceService creates a new source service.
func NewSourceService(dataDir string) *SourceService {
	return &SourceService{
		sourcesDir: filepath.Join(dataDir, "sources"),
	}
}

// Supported source file extensions and their types.
var extToType = map[string]string{
	".geojson":    "GeoJSON",
	".json":       "GeoJSON",
	".parquet":    "GeoParquet",
	".geoparquet": "GeoParquet",
}

// List returns all available source files.
func (s *SourceService) List() ([]SourceFile, error) {
	entries, err := os.ReadDir(s.sourcesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SourceFile{}, nil
		}
		return nil, err
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileType, ok := extToType[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, SourceFile{
			Name:     entry.Name(),
			Size:     formatSize(info.Size()),
			FileType: fileType,
		})
	}

	return files, nil
}

// Save writes an uploaded source file into the sources directory.
func (s *SourceService) Save(filename string, r io.Reader) error {
	if err := validFilename(filename); err != nil {
		return err
	}
	if _, ok := extToType[strings.ToLower(filepath.Ext(filename))]; !ok {
		return fmt.Errorf("unsupported file type: %s", filename)
	}

	if err := os.MkdirAll(s.sourcesDir, 0755); err != nil {
		return err
	}
	dest, err := os.Create(filepath.Join(s.sourcesDir, filename))
	if err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, r); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// Delete removes a source file by name.
func (s *SourceService) Delete(filename string) error {
	if err := validFilename(filename); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.sourcesDir, filename)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source %q not found", filename)
		}
		return err
	}
	return nil
}

// Path returns the full path of a named source file.
func (s *SourceService) Path(filename string) string {
	return filepath.Join(s.sourcesDir, filename)
}

// SourcesDir returns the path to the sources directory.
func (s *SourceService) SourcesDir() string {
	return s.sourcesDir
}

func validFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename required")
	}
	if strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return fmt.Errorf("invalid filename: %s", filename)
	}
	return nil
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
