package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"xdmf-mesh-renderer/internal/batch"
	"xdmf-mesh-renderer/internal/config"
	"xdmf-mesh-renderer/internal/dataset"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory scanned for .xdmf files (default: .)")
	file := flag.String("file", "", "Render a single .xdmf file instead of scanning")
	outputDir := flag.String("output", "", "Output directory (default: <input>/renders)")
	format := flag.String("format", "", "Image format: webp, tga or png (default: webp)")
	mode := flag.String("mode", "", "Layers: both, solid or wireframe (default: both)")
	camera := flag.String("camera", "", "Camera preset (iso, top, front, side) or yaw,pitch in degrees (default: iso)")
	size := flag.Int("size", 0, "Output edge length in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	glb := flag.Bool("glb", false, "Also write a .glb next to each image")
	surface := flag.Bool("surface", false, "Render triangle, quad, tet and pyramid cells too")
	strict := flag.Bool("strict", false, "Fail on cells that have no template")
	cacheMB := flag.Int("cache-mb", 0, "Dataset cache bound in MiB (default: 512)")
	testN := flag.Int("test", 0, "Render only the first N files")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	flags := config.Flags{
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Format:    *format,
		Mode:      *mode,
		Camera:    *camera,
		Size:      *size,
		Workers:   *workers,
		GLB:       *glb,
		Surface:   *surface,
		Strict:    *strict,
		CacheMB:   *cacheMB,
	}
	if *file != "" && flags.InputDir == "" {
		flags.InputDir = filepath.Dir(*file)
	}
	cfg.Resolve(flags)

	imgFormat, err := cfg.ImageFormat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	bg, flatten, err := cfg.BackgroundColor()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Collect jobs
	var jobs []batch.Job
	if *file != "" {
		name := filepath.Base(*file)
		jobs = []batch.Job{{Path: *file, Name: name[:len(name)-len(filepath.Ext(name))]}}
	} else {
		jobs, err = batch.FindJobs(cfg.InputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Limit for testing
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}

	if len(jobs) == 0 {
		fmt.Println("No .xdmf files to render.")
		os.Exit(0)
	}

	fmt.Printf("XDMF mesh previewer → %s\n", imgFormat)
	fmt.Printf("Files: %d, Workers: %d, Camera: %s, Mode: %s\n", len(jobs), cfg.Workers, cfg.Camera, cfg.Mode)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Workers share decoded datasets; time series often point every grid at
	// the same geometry.
	cache := dataset.NewCache(dataset.HDF5{}, cfg.CacheLimit())

	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Reader:    cache,
		Render:    renderOpts,
		View:      cfg.ViewOptions(),
		Format:    imgFormat,
		ExportGLB: cfg.ExportGLB,
		Workers:   cfg.Workers,
		Progress:  os.Stdout,
	}
	if flatten {
		batchCfg.Background = &bg
	}

	results := batch.Run(batchCfg, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs (%d datasets cached)\n", elapsed.Seconds(), cache.Len())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
