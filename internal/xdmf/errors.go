package xdmf

import "errors"

var (
	ErrMalformedLocator    = errors.New("malformed data locator")
	ErrUnsupportedFormat   = errors.New("unsupported DataItem format")
	ErrMissingDimensions   = errors.New("missing or invalid DataItem dimensions")
	ErrMissingLocator      = errors.New("missing DataItem locator text")
	ErrDimensionMismatch   = errors.New("dimension mismatch")
	ErrMissingElement      = errors.New("missing element")
	ErrUnsupportedTopology = errors.New("unsupported topology type")
)
