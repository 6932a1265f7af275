package raster_test

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"xdmf-mesh-renderer/internal/mathutil"
	"xdmf-mesh-renderer/internal/mesh"
	"xdmf-mesh-renderer/internal/raster"
)

func unitSquare(t *testing.T) (mesh.FaceView, mesh.EdgeView) {
	t.Helper()
	g := mesh.Geometry{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	topo := mesh.Topology{{Type: mesh.Quadrilateral, Nodes: []uint32{0, 1, 2, 3}}}
	opts := mesh.ViewOptions{SurfaceCells: true}
	faces, err := mesh.BuildFaceView(g, topo, opts)
	if err != nil {
		t.Fatal(err)
	}
	edges, err := mesh.BuildEdgeView(g, topo, opts)
	if err != nil {
		t.Fatal(err)
	}
	return faces, edges
}

func topOptions() raster.Options {
	opts := raster.DefaultOptions()
	opts.Size = 64
	opts.Supersample = 1
	opts.View = mathutil.Mat3Identity()
	return opts
}

func TestRenderQuadTopView(t *testing.T) {
	faces, edges := unitSquare(t)
	opts := topOptions()
	img := raster.Render(faces, edges, opts)

	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("bounds = %v", b)
	}
	// Square spans pixels 16..48 on both axes with a 16px margin.
	if a := img.NRGBAAt(30, 40).A; a != 255 {
		t.Errorf("inside alpha = %d", a)
	}
	if a := img.NRGBAAt(2, 2).A; a != 0 {
		t.Errorf("background alpha = %d", a)
	}
	if got := img.NRGBAAt(32, 48); got != opts.EdgeColor {
		t.Errorf("bottom edge pixel = %v, want %v", got, opts.EdgeColor)
	}
	if got := img.NRGBAAt(30, 40); got == opts.EdgeColor {
		t.Error("interior pixel has edge color")
	}
}

func TestRenderLayersIndependently(t *testing.T) {
	faces, edges := unitSquare(t)

	opts := topOptions()
	opts.Solid = false
	img := raster.Render(faces, edges, opts)
	if a := img.NRGBAAt(30, 40).A; a != 0 {
		t.Errorf("wireframe only: interior alpha = %d", a)
	}
	if got := img.NRGBAAt(16, 32); got != opts.EdgeColor {
		t.Errorf("wireframe only: left edge = %v", got)
	}

	opts = topOptions()
	opts.Wireframe = false
	img = raster.Render(faces, edges, opts)
	if got := img.NRGBAAt(32, 48); got == opts.EdgeColor {
		t.Error("solid only: edge color drawn")
	}
}

func TestRenderSupersampleSize(t *testing.T) {
	faces, edges := unitSquare(t)
	opts := topOptions()
	opts.Supersample = 3
	img := raster.Render(faces, edges, opts)
	if b := img.Bounds(); b.Dx() != 192 || b.Dy() != 192 {
		t.Errorf("bounds = %v", b)
	}
}

func TestRenderEmpty(t *testing.T) {
	img := raster.Render(mesh.FaceView{}, mesh.EdgeView{}, topOptions())
	if b := img.Bounds(); b.Dx() != 64 {
		t.Fatalf("bounds = %v", b)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("empty render is not transparent")
		}
	}
}

func TestRasterizeTriangleDepth(t *testing.T) {
	fb := raster.NewFrameBuffer(8, 8)
	lc := raster.DefaultLightConfig()
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	near := func(z float64) (r3.Vec, r3.Vec, r3.Vec) {
		return r3.Vec{X: 0, Y: 0, Z: z}, r3.Vec{X: 7, Y: 0, Z: z}, r3.Vec{X: 0, Y: 7, Z: z}
	}
	a, b, c := near(5)
	raster.RasterizeTriangle(fb, a, b, c, red, &lc)
	a, b, c = near(1)
	raster.RasterizeTriangle(fb, a, b, c, blue, &lc)

	img := fb.Image()
	px := img.NRGBAAt(1, 1)
	if px.B != 0 || px.R == 0 {
		t.Errorf("farther triangle overwrote nearer one: %v", px)
	}
	if z := fb.ZBuf[1*8+1]; math.Abs(z-5) > 1e-9 {
		t.Errorf("z = %v, want 5", z)
	}
}

func TestDrawLineDepthTest(t *testing.T) {
	fb := raster.NewFrameBuffer(8, 8)
	for i := range fb.ZBuf {
		fb.ZBuf[i] = 10
	}
	col := color.NRGBA{G: 255, A: 255}
	raster.DrawLine(fb, r3.Vec{X: 0, Y: 3}, r3.Vec{X: 7, Y: 3}, col, 1, 1)
	if fb.Color[(3*8+4)*4+3] != 0 {
		t.Error("hidden line was drawn")
	}
	raster.DrawLine(fb, r3.Vec{X: 0, Y: 3, Z: 9.5}, r3.Vec{X: 7, Y: 3, Z: 9.5}, col, 1, 1)
	if fb.Color[(3*8+4)*4+1] != 255 {
		t.Error("line within bias was not drawn")
	}
}

func TestShadeIsDoubleSided(t *testing.T) {
	lc := raster.DefaultLightConfig()
	n := r3.Unit(r3.Vec{X: 0.3, Y: 0.5, Z: 0.8})
	front := lc.ComputeShade(n)
	back := lc.ComputeShade(r3.Scale(-1, n))
	if math.Abs(front-back) > 1e-12 {
		t.Errorf("front %v back %v", front, back)
	}
}
