package raster

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// RasterizeTriangle fills one triangle given in screen space (x right, y
// down, z toward the viewer in pixel units) with z-buffering.
//
// Shading is flat: the lit color is computed once per face.
func RasterizeTriangle(fb *FrameBuffer, p0, p1, p2 r3.Vec, base color.NRGBA, lc *LightConfig) {
	// Face normal for flat shading. Screen y points down; flip it back so
	// the light directions stay in view space.
	n := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
	nl := r3.Norm(n)
	if nl < 1e-8 {
		return
	}
	n = r3.Scale(1/nl, n)
	n.Y = -n.Y

	cr, cg, cb := lc.Shade(base.R, base.G, base.B, lc.ComputeShade(n))

	x0, y0, z0 := p0.X, p0.Y, p0.Z
	x1, y1, z1 := p1.X, p1.Y, p1.Z
	x2, y2, z2 := p2.X, p2.Y, p2.Z

	// Bounding box
	minX := max(int(math.Min(math.Min(x0, x1), x2)), 0)
	maxX := min(int(math.Max(math.Max(x0, x1), x2))+1, fb.Width-1)
	minY := max(int(math.Min(math.Min(y0, y1), y2)), 0)
	maxY := min(int(math.Max(math.Max(y0, y1), y2))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = cr
			fb.Color[pxIdx+1] = cg
			fb.Color[pxIdx+2] = cb
			fb.Color[pxIdx+3] = base.A
		}
	}
}
