package batch

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"xdmf-mesh-renderer/internal/dataset"
	"xdmf-mesh-renderer/internal/export"
	"xdmf-mesh-renderer/internal/loader"
	"xdmf-mesh-renderer/internal/mesh"
	"xdmf-mesh-renderer/internal/postprocess"
	"xdmf-mesh-renderer/internal/raster"
)

var errNothingToRender = errors.New("batch: no renderable cells")

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir  string
	Reader     dataset.Reader // shared by all workers; must be safe for concurrent use
	Render     raster.Options
	View       mesh.ViewOptions
	Format     export.Format
	Background *color.NRGBA // nil keeps transparency
	ExportGLB  bool
	Workers    int
	Progress   io.Writer // nil disables progress lines
}

// Job is one description file to render.
type Job struct {
	Path string
	Name string // output name relative to OutputDir, without extension
}

// Result holds the outcome of processing one job.
type Result struct {
	Name      string
	Source    string
	Image     string
	GLB       string
	Points    int
	Cells     int
	Triangles int
	Edges     int
	Skipped   map[string]int
	Success   bool
	Error     string
}

// FindJobs lists every .xdmf and .xmf file under root in lexical order.
func FindJobs(root string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".xdmf" && ext != ".xmf" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		jobs = append(jobs, Job{Path: path, Name: strings.TrimSuffix(rel, filepath.Ext(rel))})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", root, err)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Path < jobs[j].Path })
	return jobs, nil
}

// Run processes all jobs using a worker pool. Results keep job order.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	workers := max(cfg.Workers, 1)

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f meshes/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = runJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// runJob turns a panic in one job into a failed Result so the rest of the
// batch keeps going.
func runJob(cfg Config, job Job) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Name: job.Name, Source: job.Path, Error: fmt.Sprintf("batch: panic: %v", r)}
		}
	}()
	return processJob(cfg, job)
}

func processJob(cfg Config, job Job) Result {
	res := Result{Name: job.Name, Source: job.Path}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	m, err := loader.New(cfg.Reader).LoadFile(job.Path)
	if err != nil {
		return fail(err)
	}
	res.Points, res.Cells = len(m.Geometry), len(m.Topology)

	faces, faceStats, err := mesh.BuildFaceViewStats(m.Geometry, m.Topology, cfg.View)
	if err != nil {
		return fail(err)
	}
	edges, edgeStats, err := mesh.BuildEdgeViewStats(m.Geometry, m.Topology, cfg.View)
	if err != nil {
		return fail(err)
	}
	res.Triangles, res.Edges = faces.TriangleCount(), edges.EdgeCount()
	res.Skipped = mergeSkipped(faceStats, edgeStats)

	if faces.TriangleCount() == 0 && edges.EdgeCount() == 0 {
		return fail(errNothingToRender)
	}

	img := raster.Render(faces, edges, cfg.Render)

	// Post-processing: supersample downsample
	if cfg.Render.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Render.Size)
	}
	if cfg.Background != nil {
		img = postprocess.Flatten(img, *cfg.Background)
	}

	res.Image = job.Name + cfg.Format.Ext()
	if err := export.WriteImage(filepath.Join(cfg.OutputDir, res.Image), img, cfg.Format); err != nil {
		return fail(err)
	}

	if cfg.ExportGLB {
		res.GLB = job.Name + ".glb"
		if err := export.WriteGLB(filepath.Join(cfg.OutputDir, res.GLB), faces, edges); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	return res
}

// mergeSkipped reports, per cell type name, the larger of the face and edge
// skip counts. Types without templates are skipped by both views.
func mergeSkipped(stats ...mesh.ViewStats) map[string]int {
	var out map[string]int
	for _, s := range stats {
		for t, n := range s.Skipped {
			if out == nil {
				out = make(map[string]int)
			}
			out[t.String()] = max(out[t.String()], n)
		}
	}
	return out
}
