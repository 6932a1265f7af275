package mesh

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCellType = errors.New("unknown cell type")
	ErrTruncatedRecord = errors.New("truncated topology record")
	ErrIndexOutOfRange = errors.New("node index out of range")
	ErrMissingTemplate = errors.New("cell type has no template")
)

// UnknownCellTypeError reports a tag not in the cell table. Offset is the
// position of the tag in the raw buffer.
type UnknownCellTypeError struct {
	Tag    int64
	Offset int
}

func (e *UnknownCellTypeError) Error() string {
	return fmt.Sprintf("mesh: unknown cell type %d at offset %d", e.Tag, e.Offset)
}

func (e *UnknownCellTypeError) Is(target error) bool { return target == ErrUnknownCellType }

// TruncatedRecordError reports a record whose nodes run past the buffer end.
type TruncatedRecordError struct {
	Offset int
	Tag    CellType
	Need   int // 1 + arity
	Have   int // values left from Offset
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("mesh: truncated %s record at offset %d: need %d values, have %d",
		e.Tag, e.Offset, e.Need, e.Have)
}

func (e *TruncatedRecordError) Is(target error) bool { return target == ErrTruncatedRecord }

// IndexError reports a node index outside [0, Limit).
type IndexError struct {
	Cell  int
	Node  int
	Index int64
	Limit int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("mesh: cell %d node %d: index %d out of range [0, %d)", e.Cell, e.Node, e.Index, e.Limit)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// MissingTemplateError is returned in strict mode for a known type that has
// no face or edge template.
type MissingTemplateError struct {
	Cell int
	Type CellType
	View string // "face" or "edge"
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("mesh: cell %d: %s has no %s template", e.Cell, e.Type, e.View)
}

func (e *MissingTemplateError) Is(target error) bool { return target == ErrMissingTemplate }
