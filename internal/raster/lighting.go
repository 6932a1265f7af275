package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LightConfig holds precomputed lighting parameters. Directions are in view
// space with +Y up and +Z toward the viewer.
type LightConfig struct {
	LightDir  r3.Vec
	RimDir    r3.Vec
	ViewDir   r3.Vec
	HalfMain  r3.Vec // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a key light from the upper right, a cool rim
// from behind and a mild specular.
func DefaultLightConfig() LightConfig {
	lightDir := r3.Unit(r3.Vec{X: 180, Y: 260, Z: 140})
	rimDir := r3.Unit(r3.Vec{X: -160, Y: 130, Z: -210})
	viewDir := r3.Unit(r3.Vec{X: 0, Y: -110, Z: -400})

	halfMain := r3.Unit(r3.Sub(lightDir, viewDir))

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.35,
		Hemi:      0.40,
		Direct:    1.10,
		Rim:       0.35,
		SpecInt:   0.25,
		SpecPow:   16.0,
		Exposure:  1.0,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit face normal.
// Cells have no consistent winding, so both sides light the same.
func (lc *LightConfig) ComputeShade(normal r3.Vec) float64 {
	ndlMain := math.Abs(r3.Dot(normal, lc.LightDir))
	ndlRim := math.Abs(r3.Dot(normal, lc.RimDir))

	// Hemisphere fill
	hemi := (1.0-math.Abs(normal.Y))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular on the side facing the light
	ndh := math.Abs(r3.Dot(normal, lc.HalfMain))
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Shade applies a lighting scalar to an sRGB color: decode, scale, ACES tone
// map, encode.
func (lc *LightConfig) Shade(r, g, b uint8, shade float64) (uint8, uint8, uint8) {
	k := shade * lc.Exposure
	enc := func(c uint8) uint8 {
		return clamp255(math.Pow(ACESTonemap(srgbToLinear[c]*k), lc.InvGamma) * 255)
	}
	return enc(r), enc(g), enc(b)
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
