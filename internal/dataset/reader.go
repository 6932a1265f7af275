// Package dataset reads flat typed arrays out of container files.
package dataset

import (
	"errors"
	"fmt"
)

// ErrRead matches every failure reported by a Reader.
var ErrRead = errors.New("dataset read failed")

// Reader returns the flat contents of one named dataset. count is the number
// of elements the caller expects; a dataset of any other size is an error.
type Reader interface {
	ReadFloat64(container, path string, count int) ([]float64, error)
	ReadInt64(container, path string, count int) ([]int64, error)
}

// ReadError describes a failed read. It matches ErrRead.
type ReadError struct {
	Container string
	Path      string
	Err       error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("dataset: %s:%s: %v", e.Container, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == ErrRead }

func readErr(container, path string, format string, args ...any) error {
	return &ReadError{Container: container, Path: path, Err: fmt.Errorf(format, args...)}
}

func checkCount(container, path string, got, want int) error {
	if got != want {
		return readErr(container, path, "has %d elements, expected %d", got, want)
	}
	return nil
}
