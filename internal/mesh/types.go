// Package mesh holds the decoded cell model of an XDMF grid and the pure
// functions that derive renderable face and edge buffers from it.
package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Point3 is one geometry point. Its index in Geometry is its identity.
type Point3 = r3.Vec

// Geometry is the ordered point set of a grid.
type Geometry []Point3

// Cell is one element: a type tag and its node indices into Geometry.
type Cell struct {
	Type  CellType
	Nodes []uint32
}

// Topology is the ordered cell list of a grid.
type Topology []Cell

// Histogram counts cells per type.
func (t Topology) Histogram() map[CellType]int {
	h := make(map[CellType]int)
	for _, c := range t {
		h[c.Type]++
	}
	return h
}

// Bounds returns the axis-aligned box of g. An empty geometry gives a zero box.
func (g Geometry) Bounds() r3.Box {
	if len(g) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: g[0], Max: g[0]}
	for _, p := range g[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Min.Z = min(b.Min.Z, p.Z)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
		b.Max.Z = max(b.Max.Z, p.Z)
	}
	return b
}

// FaceView is a triangle buffer over a compacted vertex set.
type FaceView struct {
	Vertices []Point3
	Indices  []uint32 // stride 3, into Vertices
}

// TriangleCount returns len(Indices)/3.
func (v FaceView) TriangleCount() int { return len(v.Indices) / 3 }

// EdgeView is a line-segment buffer over the full, uncompacted geometry.
type EdgeView struct {
	Vertices []Point3
	Indices  []uint32 // stride 2, point indices
}

// EdgeCount returns len(Indices)/2.
func (v EdgeView) EdgeCount() int { return len(v.Indices) / 2 }
