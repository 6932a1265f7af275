package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestEntry represents one rendered description in the output manifest.
type ManifestEntry struct {
	Name      string         `json:"name"`
	Source    string         `json:"source"`
	Image     string         `json:"image,omitempty"`
	GLB       string         `json:"glb,omitempty"`
	Points    int            `json:"points"`
	Cells     int            `json:"cells"`
	Triangles int            `json:"triangles"`
	Edges     int            `json:"edges"`
	Skipped   map[string]int `json:"skipped,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// WriteManifest writes manifest.json with one entry per result, in order.
// Image paths use forward slashes and are relative to the manifest.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:      filepath.ToSlash(r.Name),
			Source:    r.Source,
			Image:     filepath.ToSlash(r.Image),
			GLB:       filepath.ToSlash(r.GLB),
			Points:    r.Points,
			Cells:     r.Cells,
			Triangles: r.Triangles,
			Edges:     r.Edges,
			Skipped:   r.Skipped,
			Error:     r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
