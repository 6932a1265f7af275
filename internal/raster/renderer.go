package raster

import (
	"image"
	"image/color"

	"xdmf-mesh-renderer/internal/mathutil"
	"xdmf-mesh-renderer/internal/mesh"
)

const (
	// DefaultFOV is the vertical field of view, in degrees, for perspective
	// renders that do not set one.
	DefaultFOV = 35.0

	marginPx = 16
)

// Options controls one render.
type Options struct {
	Size        int // output edge length before supersampling
	Supersample int
	View        mathutil.Mat3

	Perspective bool
	FOV         float64

	Solid     bool
	Wireframe bool
	FaceColor color.NRGBA
	EdgeColor color.NRGBA
	// EdgeWidth is the line width in output pixels; it scales with
	// Supersample.
	EdgeWidth int

	Light *LightConfig
}

// DefaultOptions returns a 512px supersampled iso view with both layers on.
func DefaultOptions() Options {
	view, _ := mathutil.CameraView(mathutil.DefaultCamera)
	return Options{
		Size:        512,
		Supersample: 2,
		View:        view,
		Solid:       true,
		Wireframe:   true,
		FaceColor:   color.NRGBA{R: 176, G: 190, B: 204, A: 255},
		EdgeColor:   color.NRGBA{R: 24, G: 28, B: 36, A: 255},
		EdgeWidth:   1,
	}
}

// Render rasterizes the face view (solid layer) and the edge view (wireframe
// layer) into a square image of Size*Supersample pixels on a transparent
// background. Both layers share one camera so they line up.
func Render(faces mesh.FaceView, edges mesh.EdgeView, opts Options) *image.NRGBA {
	ss := max(opts.Supersample, 1)
	opts.Supersample = ss
	renderSize := opts.Size * ss

	var sets [][]mesh.Point3
	if opts.Solid {
		sets = append(sets, faces.Vertices)
	}
	if opts.Wireframe {
		sets = append(sets, usedPoints(edges))
	}
	cam, ok := newCamera(opts, renderSize, sets...)
	if !ok {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := opts.Light
	if lc == nil {
		def := DefaultLightConfig()
		lc = &def
	}

	if opts.Solid {
		sp := cam.project(faces.Vertices)
		idx := faces.Indices
		for i := 0; i+2 < len(idx); i += 3 {
			RasterizeTriangle(fb, sp[idx[i]], sp[idx[i+1]], sp[idx[i+2]], opts.FaceColor, lc)
		}
	}

	if opts.Wireframe {
		sp := cam.project(edges.Vertices)
		width := max(opts.EdgeWidth, 1) * ss
		bias := float64(2 * ss)
		idx := edges.Indices
		for i := 0; i+1 < len(idx); i += 2 {
			DrawLine(fb, sp[idx[i]], sp[idx[i+1]], opts.EdgeColor, width, bias)
		}
	}

	return fb.Image()
}

// usedPoints returns the points an edge view references. Its vertex set is
// the whole geometry, which may hold points no edge touches.
func usedPoints(v mesh.EdgeView) []mesh.Point3 {
	seen := make([]bool, len(v.Vertices))
	var out []mesh.Point3
	for _, i := range v.Indices {
		if !seen[i] {
			seen[i] = true
			out = append(out, v.Vertices[i])
		}
	}
	return out
}
