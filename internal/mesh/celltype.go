package mesh

import "fmt"

// CellType is the XDMF element type tag as it appears in a Mixed stream.
type CellType uint8

const (
	Line          CellType = 1
	Polyline      CellType = 2 // fixed 3 nodes in the files we read
	Triangle      CellType = 4
	Quadrilateral CellType = 5
	Tetrahedron   CellType = 6
	Pyramid       CellType = 7
	Wedge         CellType = 8
	Hexahedron    CellType = 9
	Triangle6     CellType = 36
)

// Face is one polygon of a cell template, as local node positions.
// Three entries make a triangle, four a quad split into (a,b,c) and (a,c,d).
type Face []int

// Edge is a pair of local node positions.
type Edge [2]int

// CellInfo is the static description of one cell type.
type CellInfo struct {
	Type  CellType
	Name  string
	Arity int
	Faces []Face
	Edges []Edge
	// Surface marks templates that only take part in views when
	// ViewOptions.SurfaceCells is set.
	Surface bool
}

// HasFaces reports whether the type contributes to a face view under opts.
func (ci *CellInfo) HasFaces(opts ViewOptions) bool {
	return len(ci.Faces) > 0 && (!ci.Surface || opts.SurfaceCells)
}

// HasEdges reports whether the type contributes to an edge view under opts.
func (ci *CellInfo) HasEdges(opts ViewOptions) bool {
	return len(ci.Edges) > 0 && (!ci.Surface || opts.SurfaceCells)
}

var cellTable = map[CellType]*CellInfo{
	Line:     {Type: Line, Name: "Line", Arity: 2},
	Polyline: {Type: Polyline, Name: "Polyline", Arity: 3},
	Triangle: {
		Type: Triangle, Name: "Triangle", Arity: 3, Surface: true,
		Faces: []Face{{0, 1, 2}},
		Edges: []Edge{{0, 1}, {1, 2}, {2, 0}},
	},
	Quadrilateral: {
		Type: Quadrilateral, Name: "Quadrilateral", Arity: 4, Surface: true,
		Faces: []Face{{0, 1, 2, 3}},
		Edges: []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	},
	Tetrahedron: {
		Type: Tetrahedron, Name: "Tetrahedron", Arity: 4, Surface: true,
		Faces: []Face{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}},
		Edges: []Edge{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}},
	},
	Pyramid: {
		Type: Pyramid, Name: "Pyramid", Arity: 5, Surface: true,
		Faces: []Face{{0, 3, 2, 1}, {0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4}},
		Edges: []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 4}, {1, 4}, {2, 4}, {3, 4}},
	},
	Wedge: {
		Type: Wedge, Name: "Wedge", Arity: 6,
		Faces: []Face{{0, 1, 2}, {3, 4, 5}, {0, 1, 4, 3}, {1, 2, 5, 4}, {2, 0, 3, 5}},
		Edges: []Edge{
			{0, 1}, {1, 2}, {2, 0}, // bottom
			{3, 4}, {4, 5}, {5, 3}, // top
			{0, 3}, {1, 4}, {2, 5}, // vertical
		},
	},
	Hexahedron: {
		Type: Hexahedron, Name: "Hexahedron", Arity: 8,
		Faces: []Face{
			{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 4, 5, 1},
			{3, 7, 6, 2}, {0, 3, 7, 4}, {1, 5, 6, 2},
		},
		Edges: []Edge{
			{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
			{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
			{0, 4}, {1, 5}, {2, 6}, {3, 7}, // sides
		},
	},
	Triangle6: {Type: Triangle6, Name: "Triangle_6", Arity: 6},
}

// Lookup returns the table entry for a raw tag, or false if it is unknown.
func Lookup(tag int64) (*CellInfo, bool) {
	if tag < 0 || tag > 255 {
		return nil, false
	}
	ci, ok := cellTable[CellType(tag)]
	return ci, ok
}

// Arity returns the node count of t, or 0 for an unknown type.
func (t CellType) Arity() int {
	if ci, ok := cellTable[t]; ok {
		return ci.Arity
	}
	return 0
}

func (t CellType) String() string {
	if ci, ok := cellTable[t]; ok {
		return ci.Name
	}
	return fmt.Sprintf("CellType(%d)", uint8(t))
}

// CellTypes returns every supported type in ascending tag order.
func CellTypes() []CellType {
	return []CellType{Line, Polyline, Triangle, Quadrilateral, Tetrahedron, Pyramid, Wedge, Hexahedron, Triangle6}
}
