package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"xdmf-mesh-renderer/internal/mesh"
)

// ErrEmptyView is returned by WriteGLB when both views are empty.
var ErrEmptyView = errors.New("export: nothing to write")

// WriteGLB writes the face view as a TRIANGLES primitive and the edge view as
// a LINES primitive of one mesh in a binary glTF file. An empty view is left
// out.
func WriteGLB(path string, faces mesh.FaceView, edges mesh.EdgeView) error {
	doc := BuildDocument(faces, edges)
	if len(doc.Meshes) == 0 {
		return ErrEmptyView
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// BuildDocument assembles the glTF document WriteGLB saves.
func BuildDocument(faces mesh.FaceView, edges mesh.EdgeView) *gltf.Document {
	doc := gltf.NewDocument()

	var prims []*gltf.Primitive
	if faces.TriangleCount() > 0 {
		doc.Materials = append(doc.Materials, &gltf.Material{Name: "faces", DoubleSided: true})
		prims = append(prims, &gltf.Primitive{
			Mode:       gltf.PrimitiveTriangles,
			Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions(faces.Vertices))},
			Indices:    gltf.Index(modeler.WriteIndices(doc, faces.Indices)),
			Material:   gltf.Index(len(doc.Materials) - 1),
		})
	}
	if edges.EdgeCount() > 0 {
		prims = append(prims, &gltf.Primitive{
			Mode:       gltf.PrimitiveLines,
			Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions(edges.Vertices))},
			Indices:    gltf.Index(modeler.WriteIndices(doc, edges.Indices)),
		})
	}
	if len(prims) == 0 {
		return doc
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: "grid", Primitives: prims})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "grid", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc
}

func positions(pts []mesh.Point3) [][3]float32 {
	out := make([][3]float32, len(pts))
	for i, p := range pts {
		out[i] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
	}
	return out
}
