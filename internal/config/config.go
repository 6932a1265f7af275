// Package config holds the previewer settings: a JSON file, CLI overrides and
// defaults.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"xdmf-mesh-renderer/internal/export"
	"xdmf-mesh-renderer/internal/mathutil"
	"xdmf-mesh-renderer/internal/mesh"
	"xdmf-mesh-renderer/internal/raster"
)

// Render modes.
const (
	ModeBoth      = "both"
	ModeSolid     = "solid"
	ModeWireframe = "wireframe"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Format      string  `json:"format"`
	Mode        string  `json:"mode"`
	Camera      string  `json:"camera"`
	Perspective bool    `json:"perspective"`
	FOV         float64 `json:"fov"`
	FaceColor   string  `json:"face_color"`
	EdgeColor   string  `json:"edge_color"`
	EdgeWidth   int     `json:"edge_width"`
	Background  string  `json:"background"` // empty keeps the background transparent

	// Connectivity views
	SurfaceCells bool `json:"surface_cells"`
	Strict       bool `json:"strict"`
	UniqueEdges  bool `json:"unique_edges"`

	ExportGLB bool `json:"export_glb"`
	Workers   int  `json:"workers"`
	CacheMB   int  `json:"cache_mb"` // dataset cache bound shared by workers
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values and false leave the file setting alone.
type Flags struct {
	InputDir  string
	OutputDir string
	Format    string
	Mode      string
	Camera    string
	Size      int
	Workers   int
	GLB       bool
	Surface   bool
	Strict    bool
	CacheMB   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Camera != "" {
		c.Camera = flags.Camera
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.CacheMB > 0 {
		c.CacheMB = flags.CacheMB
	}
	c.ExportGLB = c.ExportGLB || flags.GLB
	c.SurfaceCells = c.SurfaceCells || flags.Surface
	c.Strict = c.Strict || flags.Strict

	if c.InputDir == "" {
		c.InputDir = "."
	}

	// Resolve output dir against the input dir
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Format == "" {
		c.Format = string(export.WebP)
	}
	if c.Mode == "" {
		c.Mode = ModeBoth
	}
	if c.Camera == "" {
		c.Camera = mathutil.DefaultCamera
	}
	if c.EdgeWidth <= 0 {
		c.EdgeWidth = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.CacheMB <= 0 {
		c.CacheMB = 512
	}
}

// CacheLimit returns the dataset cache bound in 8-byte values.
func (c *Config) CacheLimit() int {
	return c.CacheMB << 20 / 8
}

// ImageFormat returns the parsed output format.
func (c *Config) ImageFormat() (export.Format, error) {
	return export.ParseFormat(c.Format)
}

// ViewOptions returns the connectivity view settings.
func (c *Config) ViewOptions() mesh.ViewOptions {
	return mesh.ViewOptions{
		Strict:       c.Strict,
		SurfaceCells: c.SurfaceCells,
		UniqueEdges:  c.UniqueEdges,
	}
}

// RenderOptions converts the render settings. Call Resolve first.
func (c *Config) RenderOptions() (raster.Options, error) {
	opts := raster.DefaultOptions()
	opts.Size = c.RenderSize
	opts.Supersample = c.Supersample
	opts.Perspective = c.Perspective
	opts.FOV = c.FOV
	opts.EdgeWidth = c.EdgeWidth

	view, err := mathutil.CameraView(c.Camera)
	if err != nil {
		return opts, fmt.Errorf("config: %w", err)
	}
	opts.View = view

	switch strings.ToLower(c.Mode) {
	case ModeBoth:
		opts.Solid, opts.Wireframe = true, true
	case ModeSolid:
		opts.Solid, opts.Wireframe = true, false
	case ModeWireframe:
		opts.Solid, opts.Wireframe = false, true
	default:
		return opts, fmt.Errorf("config: unknown mode %q", c.Mode)
	}

	if c.FaceColor != "" {
		if opts.FaceColor, err = ParseColor(c.FaceColor); err != nil {
			return opts, err
		}
	}
	if c.EdgeColor != "" {
		if opts.EdgeColor, err = ParseColor(c.EdgeColor); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// BackgroundColor returns the flatten color, or false for transparent output.
func (c *Config) BackgroundColor() (color.NRGBA, bool, error) {
	if c.Background == "" {
		return color.NRGBA{}, false, nil
	}
	bg, err := ParseColor(c.Background)
	if err != nil {
		return color.NRGBA{}, false, err
	}
	return bg, true, nil
}

// ParseColor reads "#rrggbb" or "#rrggbbaa"; the leading '#' is optional.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("config: color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
