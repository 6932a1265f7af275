package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xdmf-mesh-renderer/internal/dataset"
	"xdmf-mesh-renderer/internal/export"
	"xdmf-mesh-renderer/internal/loader"
	"xdmf-mesh-renderer/internal/mesh"
)

const usage = "usage: export [-o out.glb] [-surface] [-strict] [-unique] file.xdmf"

// args holds the parsed command line.
type args struct {
	path string
	out  string
	view mesh.ViewOptions
}

func parseArgs(argv []string) (args, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	output := fs.String("o", "", "Output .glb path (default: input name with .glb)")
	surface := fs.Bool("surface", false, "Include triangle, quad, tet and pyramid cells")
	strict := fs.Bool("strict", false, "Fail on cells that have no template")
	unique := fs.Bool("unique", false, "Write each shared edge once")
	if err := fs.Parse(argv); err != nil {
		return args{}, err
	}
	if fs.NArg() != 1 {
		return args{}, errors.New(usage)
	}

	a := args{
		path: fs.Arg(0),
		out:  *output,
		view: mesh.ViewOptions{Strict: *strict, SurfaceCells: *surface, UniqueEdges: *unique},
	}
	if a.out == "" {
		a.out = strings.TrimSuffix(a.path, filepath.Ext(a.path)) + ".glb"
	}
	return a, nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	m, err := loader.New(dataset.HDF5{}).LoadFile(a.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	faces, err := mesh.BuildFaceView(m.Geometry, m.Topology, a.view)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	edges, err := mesh.BuildEdgeView(m.Geometry, m.Topology, a.view)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := export.WriteGLB(a.out, faces, edges); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s: %d triangles, %d edges\n", a.out, faces.TriangleCount(), edges.EdgeCount())
}
