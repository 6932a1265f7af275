// Package loader turns an XDMF description into a decoded mesh.
//
// A Loader walks Domain > Grid > {Geometry, Topology}, reads the referenced
// datasets through a dataset.Reader and decodes the topology. It moves
// through Unloaded, DescriptionParsed, GeometryLoaded, TopologyLoaded and
// Ready; any failure moves it to Failed and no mesh is returned.
package loader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"xdmf-mesh-renderer/internal/dataset"
	"xdmf-mesh-renderer/internal/mesh"
	"xdmf-mesh-renderer/internal/xdmf"
)

// Mesh is the immutable result of a successful load.
type Mesh struct {
	Source   string
	Kind     TopologyKind
	Geometry mesh.Geometry
	Topology mesh.Topology
}

// Option configures a Loader.
type Option func(*Loader)

// WithBaseDir anchors relative container paths at dir.
func WithBaseDir(dir string) Option {
	return func(l *Loader) { l.baseDir = dir }
}

// Loader runs one load at a time. It is not safe for concurrent use; create
// one per goroutine.
type Loader struct {
	reader  dataset.Reader
	baseDir string

	state State
	err   error
}

// New returns a Loader reading datasets through r.
func New(r dataset.Reader, opts ...Option) *Loader {
	l := &Loader{reader: r}
	for _, o := range opts {
		o(l)
	}
	return l
}

// State returns the state reached by the last Load.
func (l *Loader) State() State { return l.state }

// Err returns the error that moved the loader to Failed, or nil.
func (l *Loader) Err() error { return l.err }

// LoadFile parses the description at path and loads it. Relative containers
// resolve against the description's directory unless WithBaseDir was given.
func (l *Loader) LoadFile(path string) (*Mesh, error) {
	l.state, l.err = Unloaded, nil
	root, err := xdmf.ParseFile(path)
	if err != nil {
		return nil, l.fail(err)
	}
	if l.baseDir == "" {
		l.baseDir = filepath.Dir(path)
		defer func() { l.baseDir = "" }()
	}
	m, err := l.Load(root)
	if m != nil {
		m.Source = path
	}
	return m, err
}

// Load walks an already-parsed description.
func (l *Loader) Load(root xdmf.Node) (*Mesh, error) {
	l.state, l.err = Unloaded, nil

	desc, err := parseDescription(root)
	if err != nil {
		return nil, l.fail(err)
	}
	l.state = DescriptionParsed

	geom, err := LoadGeometry(l.reader, desc.geometry, l.baseDir)
	if err != nil {
		return nil, l.fail(err)
	}
	l.state = GeometryLoaded

	topo, err := l.loadTopology(desc)
	if err != nil {
		return nil, l.fail(err)
	}
	l.state = TopologyLoaded

	if err := topo.CheckBounds(len(geom)); err != nil {
		return nil, l.fail(fmt.Errorf("loader: topology: %w", err))
	}
	l.state = Ready

	return &Mesh{Kind: desc.kind, Geometry: geom, Topology: topo}, nil
}

func (l *Loader) fail(err error) error {
	l.state, l.err = Failed, err
	return err
}

// description is the validated shape of one grid.
type description struct {
	geometry xdmf.DataItem
	topology xdmf.DataItem
	kind     TopologyKind
	elements int
	arity    int
}

func parseDescription(root xdmf.Node) (description, error) {
	var d description
	if root == nil || root.Name() != "Xdmf" {
		return d, fmt.Errorf("loader: root element is not Xdmf: %w", xdmf.ErrMissingElement)
	}
	grid, err := descend(root, "Domain", "Grid")
	if err != nil {
		return d, err
	}

	geomNode, err := descend(grid, "Geometry")
	if err != nil {
		return d, err
	}
	if d.geometry, err = xdmf.ParseDataItem(geomNode.Child("DataItem")); err != nil {
		return d, fmt.Errorf("loader: geometry: %w", err)
	}
	if gt, ok := geomNode.Attr("GeometryType"); ok && len(d.geometry.Dims) == 2 {
		want := map[string]uint64{"XYZ": 3, "XY": 2}[gt]
		if want != 0 && want != d.geometry.Dims[1] {
			return d, fmt.Errorf("loader: GeometryType %s with %d components: %w", gt, d.geometry.Dims[1], xdmf.ErrDimensionMismatch)
		}
	}

	topoNode, err := descend(grid, "Topology")
	if err != nil {
		return d, err
	}
	if d.topology, err = xdmf.ParseDataItem(topoNode.Child("DataItem")); err != nil {
		return d, fmt.Errorf("loader: topology: %w", err)
	}

	topoType, _ := topoNode.Attr("TopologyType")
	switch strings.ToLower(topoType) {
	case "mixed":
		d.kind = TopologyMixed
		if len(d.topology.Dims) != 1 {
			return d, fmt.Errorf("loader: Mixed topology dimensions %v, want 1-D: %w", d.topology.Dims, xdmf.ErrDimensionMismatch)
		}
	case "", "quadrilateral", "quad":
		d.kind = TopologyUniform
		if err := parseUniform(topoNode, &d); err != nil {
			return d, err
		}
	default:
		return d, fmt.Errorf("loader: TopologyType %q: %w", topoType, xdmf.ErrUnsupportedTopology)
	}
	return d, nil
}

// parseUniform reads NumberOfElements / NodesPerElement and checks them
// against the DataItem dimensions.
func parseUniform(n xdmf.Node, d *description) error {
	var err error
	if d.elements, err = intAttr(n, "NumberOfElements", -1); err != nil {
		return err
	}
	if d.arity, err = intAttr(n, "NodesPerElement", mesh.Quadrilateral.Arity()); err != nil {
		return err
	}
	if d.elements < 0 {
		return fmt.Errorf("loader: uniform topology: NumberOfElements: %w", xdmf.ErrMissingElement)
	}

	dims := d.topology.Dims
	if len(dims) != 2 || dims[0] != uint64(d.elements) || dims[1] != uint64(d.arity) {
		return fmt.Errorf("loader: topology dimensions %v, declared %d x %d: %w",
			dims, d.elements, d.arity, xdmf.ErrDimensionMismatch)
	}
	return nil
}

func (l *Loader) loadTopology(d description) (mesh.Topology, error) {
	loc, err := resolve(d.topology.Locator, l.baseDir)
	if err != nil {
		return nil, err
	}
	count, ok := d.topology.Count()
	if !ok {
		return nil, fmt.Errorf("loader: topology dimensions %v overflow: %w", d.topology.Dims, xdmf.ErrDimensionMismatch)
	}
	raw, err := l.reader.ReadInt64(loc.Container, loc.Path, int(count))
	if err != nil {
		return nil, fmt.Errorf("loader: topology: %w", err)
	}

	var topo mesh.Topology
	if d.kind == TopologyMixed {
		topo, err = mesh.DecodeMixed(raw)
	} else {
		topo, err = mesh.ReshapeUniform(raw, d.elements, d.arity, mesh.Quadrilateral)
	}
	if err != nil {
		return nil, fmt.Errorf("loader: topology: %w", err)
	}
	return topo, nil
}

func descend(n xdmf.Node, names ...string) (xdmf.Node, error) {
	for _, name := range names {
		next := n.Child(name)
		if next == nil {
			return nil, fmt.Errorf("loader: <%s> has no <%s>: %w", n.Name(), name, xdmf.ErrMissingElement)
		}
		n = next
	}
	return n, nil
}

func intAttr(n xdmf.Node, name string, def int) (int, error) {
	s, ok := n.Attr(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("loader: %s=%q: %w", name, s, xdmf.ErrDimensionMismatch)
	}
	return v, nil
}
