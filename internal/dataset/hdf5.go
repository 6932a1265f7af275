package dataset

import (
	"math"
	"strings"

	"github.com/scigolib/hdf5"
)

// maxExactInt is the largest integer magnitude a float64 holds exactly.
const maxExactInt = 1 << 53

// HDF5 reads datasets from HDF5 container files on disk. Each call opens and
// closes the container; wrap it in a Cache to reuse decoded buffers.
type HDF5 struct{}

func (HDF5) ReadFloat64(container, path string, count int) ([]float64, error) {
	data, err := readHDF5(container, path)
	if err != nil {
		return nil, err
	}
	if err := checkCount(container, path, len(data), count); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadInt64 reads an integer dataset. The underlying library widens every
// numeric type to float64, so values are checked to be integral and exactly
// representable before conversion.
func (HDF5) ReadInt64(container, path string, count int) ([]int64, error) {
	data, err := readHDF5(container, path)
	if err != nil {
		return nil, err
	}
	if err := checkCount(container, path, len(data), count); err != nil {
		return nil, err
	}

	out := make([]int64, len(data))
	for i, v := range data {
		if v != math.Trunc(v) || math.Abs(v) > maxExactInt {
			return nil, readErr(container, path, "element %d = %v is not an exact integer", i, v)
		}
		out[i] = int64(v)
	}
	return out, nil
}

func readHDF5(container, path string) ([]float64, error) {
	f, err := hdf5.Open(container)
	if err != nil {
		return nil, readErr(container, path, "open: %w", err)
	}
	defer f.Close()

	want := normalizePath(path)
	var ds *hdf5.Dataset
	f.Walk(func(p string, obj hdf5.Object) {
		if ds != nil {
			return
		}
		if d, ok := obj.(*hdf5.Dataset); ok && normalizePath(p) == want {
			ds = d
		}
	})
	if ds == nil {
		return nil, readErr(container, path, "dataset not found")
	}

	data, err := ds.Read()
	if err != nil {
		return nil, readErr(container, path, "read: %w", err)
	}
	return data, nil
}

// normalizePath maps "/data0", "data0" and "/data0/" to the same key.
func normalizePath(p string) string {
	return "/" + strings.Trim(p, "/")
}
