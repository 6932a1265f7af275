package mesh

// ViewOptions controls how cells without a template are treated and which
// optional templates take part.
type ViewOptions struct {
	// Strict fails on a known cell type that has no template for the view
	// being built. Unknown types always fail.
	Strict bool
	// SurfaceCells enables the Triangle, Quadrilateral, Tetrahedron and
	// Pyramid templates. Off, only Wedge and Hexahedron render.
	SurfaceCells bool
	// UniqueEdges emits each undirected edge once, in first-seen order.
	UniqueEdges bool
}

// ViewStats reports what a view build skipped.
type ViewStats struct {
	Skipped map[CellType]int
}

// BuildFaceView triangulates every templated cell of t. Output vertices are
// the referenced points of g in first-reference order.
func BuildFaceView(g Geometry, t Topology, opts ViewOptions) (FaceView, error) {
	v, _, err := BuildFaceViewStats(g, t, opts)
	return v, err
}

// BuildFaceViewStats is BuildFaceView plus skip counts.
func BuildFaceViewStats(g Geometry, t Topology, opts ViewOptions) (FaceView, ViewStats, error) {
	stats := ViewStats{Skipped: make(map[CellType]int)}
	if err := t.CheckBounds(len(g)); err != nil {
		return FaceView{}, stats, err
	}

	var out FaceView
	remap := make(map[uint32]uint32)
	emit := func(src uint32) {
		dst, ok := remap[src]
		if !ok {
			dst = uint32(len(out.Vertices))
			remap[src] = dst
			out.Vertices = append(out.Vertices, g[src])
		}
		out.Indices = append(out.Indices, dst)
	}

	for i, c := range t {
		ci, _ := Lookup(int64(c.Type))
		if !ci.HasFaces(opts) {
			if opts.Strict {
				return FaceView{}, stats, &MissingTemplateError{Cell: i, Type: c.Type, View: "face"}
			}
			stats.Skipped[c.Type]++
			continue
		}
		for _, f := range ci.Faces {
			a, b, cc := c.Nodes[f[0]], c.Nodes[f[1]], c.Nodes[f[2]]
			emit(a)
			emit(b)
			emit(cc)
			if len(f) == 4 {
				d := c.Nodes[f[3]]
				emit(a)
				emit(cc)
				emit(d)
			}
		}
	}
	return out, stats, nil
}

// BuildEdgeView lists every template edge of t as raw point indices.
// Vertices is a copy of g; indices are not remapped.
func BuildEdgeView(g Geometry, t Topology, opts ViewOptions) (EdgeView, error) {
	v, _, err := BuildEdgeViewStats(g, t, opts)
	return v, err
}

// BuildEdgeViewStats is BuildEdgeView plus skip counts.
func BuildEdgeViewStats(g Geometry, t Topology, opts ViewOptions) (EdgeView, ViewStats, error) {
	stats := ViewStats{Skipped: make(map[CellType]int)}
	if err := t.CheckBounds(len(g)); err != nil {
		return EdgeView{}, stats, err
	}

	out := EdgeView{Vertices: make([]Point3, len(g))}
	copy(out.Vertices, g)

	var seen map[[2]uint32]struct{}
	if opts.UniqueEdges {
		seen = make(map[[2]uint32]struct{})
	}

	for i, c := range t {
		ci, _ := Lookup(int64(c.Type))
		if !ci.HasEdges(opts) {
			if opts.Strict {
				return EdgeView{}, stats, &MissingTemplateError{Cell: i, Type: c.Type, View: "edge"}
			}
			stats.Skipped[c.Type]++
			continue
		}
		for _, e := range ci.Edges {
			a, b := c.Nodes[e[0]], c.Nodes[e[1]]
			if seen != nil {
				key := [2]uint32{min(a, b), max(a, b)}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			out.Indices = append(out.Indices, a, b)
		}
	}
	return out, stats, nil
}
