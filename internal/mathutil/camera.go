package mathutil

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera presets. Screen X is view X, screen Y is view Y (up) and larger
// view Z is closer to the viewer.
var presets = map[string]Mat3{
	// Looking down the Z axis; 2D meshes render flat.
	"top": Mat3Identity(),
	// Looking along -Y with Z up.
	"front": OrbitView(0, -90),
	// Looking along -X with Z up.
	"side": OrbitView(-90, -90),
	// Three faces of an axis-aligned box visible.
	"iso": OrbitView(-45, -55),
}

// DefaultCamera is used when no camera is configured.
const DefaultCamera = "iso"

// CameraView returns the rotation for a preset name, or for "yaw,pitch" in
// degrees (see OrbitView).
func CameraView(name string) (Mat3, error) {
	if name == "" {
		name = DefaultCamera
	}
	if yawS, pitchS, ok := strings.Cut(name, ","); ok {
		yaw, err1 := strconv.ParseFloat(strings.TrimSpace(yawS), 64)
		pitch, err2 := strconv.ParseFloat(strings.TrimSpace(pitchS), 64)
		if err1 != nil || err2 != nil {
			return Mat3{}, fmt.Errorf("mathutil: camera %q: want yaw,pitch in degrees", name)
		}
		return OrbitView(yaw, pitch), nil
	}
	m, ok := presets[name]
	if !ok {
		return Mat3{}, fmt.Errorf("mathutil: unknown camera %q (have %v)", name, CameraNames())
	}
	return m, nil
}

// OrbitView spins the mesh by yaw about world Z, then tilts it by pitch about
// screen X. Angles in degrees.
func OrbitView(yaw, pitch float64) Mat3 {
	return Mat3Mul(AxisRotation(r3.Vec{X: 1}, pitch), AxisRotation(r3.Vec{Z: 1}, yaw))
}

// CameraNames lists the preset names in sorted order.
func CameraNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
