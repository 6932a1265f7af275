package loader

import (
	"fmt"
	"math"
	"path/filepath"

	"xdmf-mesh-renderer/internal/dataset"
	"xdmf-mesh-renderer/internal/mesh"
	"xdmf-mesh-renderer/internal/xdmf"
)

// LoadGeometry reads the point set described by item. Dims must be [N 3];
// [N 2] is also accepted and gets z = 0.
func LoadGeometry(r dataset.Reader, item xdmf.DataItem, baseDir string) (mesh.Geometry, error) {
	if len(item.Dims) != 2 || (item.Dims[1] != 3 && item.Dims[1] != 2) {
		return nil, fmt.Errorf("loader: geometry dimensions %v, want [N 3]: %w", item.Dims, xdmf.ErrDimensionMismatch)
	}
	comps := int(item.Dims[1])
	if item.Dims[0] > uint64(math.MaxInt/comps) {
		return nil, fmt.Errorf("loader: geometry dimensions %v overflow: %w", item.Dims, xdmf.ErrDimensionMismatch)
	}
	n := int(item.Dims[0])

	loc, err := resolve(item.Locator, baseDir)
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadFloat64(loc.Container, loc.Path, n*comps)
	if err != nil {
		return nil, fmt.Errorf("loader: geometry: %w", err)
	}
	if len(raw) != n*comps {
		return nil, fmt.Errorf("loader: geometry: %w", &dataset.ReadError{
			Container: loc.Container, Path: loc.Path,
			Err: fmt.Errorf("got %d values, expected %d", len(raw), n*comps),
		})
	}

	g := make(mesh.Geometry, n)
	for i := range g {
		p := raw[i*comps : (i+1)*comps]
		g[i].X, g[i].Y = p[0], p[1]
		if comps == 3 {
			g[i].Z = p[2]
		}
	}
	return g, nil
}

// resolve splits a locator and anchors a relative container at baseDir.
func resolve(s, baseDir string) (xdmf.Locator, error) {
	loc, err := xdmf.ResolveLocatorStrict(s)
	if err != nil {
		return xdmf.Locator{}, fmt.Errorf("loader: %w", err)
	}
	if baseDir != "" && !filepath.IsAbs(loc.Container) {
		loc.Container = filepath.Join(baseDir, loc.Container)
	}
	return loc, nil
}
