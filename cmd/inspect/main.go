package main

import (
	"flag"
	"fmt"
	"os"

	"xdmf-mesh-renderer/internal/dataset"
	"xdmf-mesh-renderer/internal/loader"
	"xdmf-mesh-renderer/internal/mesh"
)

func main() {
	surface := flag.Bool("surface", false, "Count triangle, quad, tet and pyramid cells in the views")
	unique := flag.Bool("unique", false, "Count each shared edge once")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-surface] [-unique] file.xdmf")
		os.Exit(2)
	}
	path := flag.Arg(0)

	l := loader.New(dataset.HDF5{})
	m, err := l.LoadFile(path)
	fmt.Printf("State: %s\n", l.State())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Topology: %s\n", m.Kind)
	fmt.Printf("Points: %d, Cells: %d\n", len(m.Geometry), len(m.Topology))

	hist := m.Topology.Histogram()
	for _, t := range mesh.CellTypes() {
		if n := hist[t]; n > 0 {
			fmt.Printf("  %-14s %d\n", t, n)
		}
	}

	b := m.Geometry.Bounds()
	fmt.Printf("BBox: X[%.4g, %.4g] Y[%.4g, %.4g] Z[%.4g, %.4g]\n",
		b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)

	opts := mesh.ViewOptions{SurfaceCells: *surface, UniqueEdges: *unique}
	faces, fs, err := mesh.BuildFaceViewStats(m.Geometry, m.Topology, opts)
	if err != nil {
		fmt.Printf("Face view error: %v\n", err)
		os.Exit(1)
	}
	edges, es, err := mesh.BuildEdgeViewStats(m.Geometry, m.Topology, opts)
	if err != nil {
		fmt.Printf("Edge view error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Face view: %d vertices, %d triangles\n", len(faces.Vertices), faces.TriangleCount())
	fmt.Printf("Edge view: %d vertices, %d edges\n", len(edges.Vertices), edges.EdgeCount())
	for _, t := range mesh.CellTypes() {
		if fs.Skipped[t] > 0 || es.Skipped[t] > 0 {
			fmt.Printf("  skipped %-14s faces=%d edges=%d\n", t, fs.Skipped[t], es.Skipped[t])
		}
	}
}
