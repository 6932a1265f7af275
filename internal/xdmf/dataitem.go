package xdmf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatHDF is the only DataItem storage format the loader reads.
const FormatHDF = "HDF"

// DataItem is the parsed form of a <DataItem> element.
type DataItem struct {
	Dims       []uint64 // declaration order, e.g. "30574 3" -> [30574 3]
	Locator    string   // trimmed inner text
	NumberType string   // informational: "Float", "Int", ...
	Precision  int      // informational: bytes per element, 0 if absent
}

// Count returns the product of all dimensions. ok is false when the product
// does not fit in an int.
func (d DataItem) Count() (n uint64, ok bool) {
	if len(d.Dims) == 0 {
		return 0, true
	}
	n = 1
	for _, v := range d.Dims {
		if v != 0 && n > math.MaxInt/v {
			return 0, false
		}
		n *= v
	}
	return n, true
}

// ParseDataItem validates and extracts a DataItem element.
func ParseDataItem(n Node) (DataItem, error) {
	if n == nil {
		return DataItem{}, fmt.Errorf("xdmf: DataItem: %w", ErrMissingElement)
	}

	format, ok := n.Attr("Format")
	if !ok || format != FormatHDF {
		return DataItem{}, fmt.Errorf("xdmf: DataItem Format %q (want %q): %w", format, FormatHDF, ErrUnsupportedFormat)
	}

	dimStr, ok := n.Attr("Dimensions")
	if !ok {
		return DataItem{}, fmt.Errorf("xdmf: DataItem: no Dimensions attribute: %w", ErrMissingDimensions)
	}
	dims, err := ParseDims(dimStr)
	if err != nil {
		return DataItem{}, err
	}

	loc := strings.TrimSpace(n.Text())
	if loc == "" {
		return DataItem{}, fmt.Errorf("xdmf: DataItem: %w", ErrMissingLocator)
	}

	item := DataItem{Dims: dims, Locator: loc}
	item.NumberType, _ = n.Attr("NumberType")
	if p, ok := n.Attr("Precision"); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			item.Precision = v
		}
	}
	return item, nil
}

// ParseDims parses a whitespace-separated list of non-negative integers.
func ParseDims(s string) ([]uint64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("xdmf: Dimensions %q is empty: %w", s, ErrMissingDimensions)
	}
	dims := make([]uint64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("xdmf: Dimensions %q: bad field %q: %w", s, f, ErrMissingDimensions)
		}
		dims[i] = v
	}
	return dims, nil
}
