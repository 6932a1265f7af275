package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"xdmf-mesh-renderer/internal/mathutil"
	"xdmf-mesh-renderer/internal/mesh"
)

// camera maps world points to screen space. It fits the rotated bounds of
// every point set it was built from into the frame.
type camera struct {
	view   mathutil.Mat3
	center r3.Vec
	scale  float64
	half   float64

	persp   bool
	camDist float64
}

// newCamera returns false when there is nothing to frame.
func newCamera(opts Options, renderSize int, sets ...[]mesh.Point3) (camera, bool) {
	c := camera{view: opts.View, half: float64(renderSize) / 2}

	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	found := false
	for _, pts := range sets {
		for _, p := range pts {
			t := c.view.Apply(p)
			lo = r3.Vec{X: math.Min(lo.X, t.X), Y: math.Min(lo.Y, t.Y), Z: math.Min(lo.Z, t.Z)}
			hi = r3.Vec{X: math.Max(hi.X, t.X), Y: math.Max(hi.Y, t.Y), Z: math.Max(hi.Z, t.Z)}
			found = true
		}
	}
	if !found {
		return c, false
	}

	c.center = r3.Scale(0.5, r3.Add(lo, hi))
	span := math.Max(math.Max(hi.X-lo.X, hi.Y-lo.Y), 0.001)

	margin := marginPx * opts.Supersample
	c.scale = float64(renderSize-2*margin) / span

	if opts.Perspective {
		fov := opts.FOV
		if fov <= 0 {
			fov = DefaultFOV
		}
		c.persp = true
		c.camDist = (span / 2) / math.Tan(mathutil.Deg2Rad(fov/2))
	}
	return c, true
}

// project transforms points to screen coordinates: x right, y down, z toward
// the viewer, all in pixels.
func (c *camera) project(pts []mesh.Point3) []r3.Vec {
	out := make([]r3.Vec, len(pts))
	for i, p := range pts {
		t := r3.Sub(c.view.Apply(p), c.center)

		if c.persp {
			depth := math.Max(c.camDist-t.Z, 0.1)
			factor := c.camDist / depth
			t.X *= factor
			t.Y *= factor
		}

		out[i] = r3.Vec{
			X: t.X*c.scale + c.half,
			Y: -t.Y*c.scale + c.half,
			Z: t.Z * c.scale,
		}
	}
	return out
}
