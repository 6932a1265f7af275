package mesh

import (
	"fmt"
	"math"

	"xdmf-mesh-renderer/internal/xdmf"
)

// DecodeMixed decodes an XDMF Mixed topology stream.
//
// The stream is a bare concatenation of records (tag, node0 .. nodeK-1) where
// K is the arity of tag. There is no count prefix: decoding stops when the
// cursor lands exactly on the end of raw. An unknown tag is fatal because the
// record length cannot be known and the stream cannot be resynchronized.
//
// Node indices are checked for sign and uint32 range only. Checking them
// against the point count is Topology.CheckBounds.
func DecodeMixed(raw []int64) (Topology, error) {
	var topo Topology
	off := 0
	for off < len(raw) {
		tag := raw[off]
		ci, ok := Lookup(tag)
		if !ok {
			return nil, &UnknownCellTypeError{Tag: tag, Offset: off}
		}

		need := 1 + ci.Arity
		if have := len(raw) - off; need > have {
			return nil, &TruncatedRecordError{Offset: off, Tag: ci.Type, Need: need, Have: have}
		}

		nodes := make([]uint32, ci.Arity)
		for j, v := range raw[off+1 : off+need] {
			if v < 0 || v > math.MaxUint32 {
				return nil, &IndexError{Cell: len(topo), Node: j, Index: v, Limit: math.MaxUint32}
			}
			nodes[j] = uint32(v)
		}
		topo = append(topo, Cell{Type: ci.Type, Nodes: nodes})
		off += need
	}
	return topo, nil
}

// ReshapeUniform cuts a flat index buffer into count cells of type t.
func ReshapeUniform(raw []int64, count, arity int, t CellType) (Topology, error) {
	if arity != t.Arity() {
		return nil, fmt.Errorf("mesh: %s has %d nodes, topology declares %d: %w",
			t, t.Arity(), arity, xdmf.ErrDimensionMismatch)
	}
	if count < 0 || (arity > 0 && count > math.MaxInt/arity) || count*arity != len(raw) {
		return nil, fmt.Errorf("mesh: %d elements x %d nodes != %d indices: %w",
			count, arity, len(raw), xdmf.ErrDimensionMismatch)
	}

	topo := make(Topology, count)
	for i := range topo {
		nodes := make([]uint32, arity)
		for j := range nodes {
			v := raw[i*arity+j]
			if v < 0 || v > math.MaxUint32 {
				return nil, &IndexError{Cell: i, Node: j, Index: v, Limit: math.MaxUint32}
			}
			nodes[j] = uint32(v)
		}
		topo[i] = Cell{Type: t, Nodes: nodes}
	}
	return topo, nil
}

// CheckBounds verifies that every node of every cell is < pointCount and that
// each cell has exactly its type's arity.
func (t Topology) CheckBounds(pointCount int) error {
	for i, c := range t {
		n := c.Type.Arity()
		if n == 0 {
			return fmt.Errorf("mesh: cell %d: %s: %w", i, c.Type, ErrUnknownCellType)
		}
		if len(c.Nodes) != n {
			return fmt.Errorf("mesh: cell %d: %s with %d nodes: %w", i, c.Type, len(c.Nodes), xdmf.ErrDimensionMismatch)
		}
		for j, v := range c.Nodes {
			if int64(v) >= int64(pointCount) {
				return &IndexError{Cell: i, Node: j, Index: int64(v), Limit: pointCount}
			}
		}
	}
	return nil
}
