package mathutil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AxisRotation returns the matrix of a right-handed turn of deg degrees about
// axis. Columns are the images of the unit vectors.
func AxisRotation(axis r3.Vec, deg float64) Mat3 {
	rot := r3.NewRotation(Deg2Rad(deg), axis)
	var m Mat3
	for c, e := range [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		col := rot.Rotate(e)
		m[c], m[3+c], m[6+c] = col.X, col.Y, col.Z
	}
	return m
}

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
