package raster

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DrawLine draws a depth-tested segment between two screen-space points with
// a square brush of the given width. A pixel is written when the segment
// lies no more than bias behind what is already there, so edges on the
// surface of a filled face stay visible.
func DrawLine(fb *FrameBuffer, a, b r3.Vec, col color.NRGBA, width int, bias float64) {
	width = max(width, 1)
	lo := -(width - 1) / 2
	hi := lo + width - 1

	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		cx := int(math.Floor(a.X + (b.X-a.X)*t + 0.5))
		cy := int(math.Floor(a.Y + (b.Y-a.Y)*t + 0.5))
		z := a.Z + (b.Z-a.Z)*t

		for dy := lo; dy <= hi; dy++ {
			y := cy + dy
			if y < 0 || y >= fb.Height {
				continue
			}
			for dx := lo; dx <= hi; dx++ {
				x := cx + dx
				if x < 0 || x >= fb.Width {
					continue
				}
				zIdx := y*fb.Width + x
				if z+bias < fb.ZBuf[zIdx] {
					continue
				}
				fb.ZBuf[zIdx] = math.Max(fb.ZBuf[zIdx], z)

				pxIdx := zIdx * 4
				fb.Color[pxIdx] = col.R
				fb.Color[pxIdx+1] = col.G
				fb.Color[pxIdx+2] = col.B
				fb.Color[pxIdx+3] = col.A
			}
		}
	}
}
