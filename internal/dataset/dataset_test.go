package dataset_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/scigolib/hdf5"

	"xdmf-mesh-renderer/internal/dataset"
)

func TestMemoryRead(t *testing.T) {
	m := dataset.NewMemory()
	m.PutFloat64("a.h5", "/data0", []float64{1, 2, 3})
	m.PutInt64("a.h5", "/data1", []int64{9, 0, 1})

	f, err := m.ReadFloat64("a.h5", "/data0", 3)
	if err != nil || len(f) != 3 || f[2] != 3 {
		t.Fatalf("ReadFloat64 = %v, %v", f, err)
	}
	f[0] = 100
	again, _ := m.ReadFloat64("a.h5", "/data0", 3)
	if again[0] != 1 {
		t.Error("Memory should hand out copies")
	}

	i, err := m.ReadInt64("a.h5", "/data1", 3)
	if err != nil || i[0] != 9 {
		t.Fatalf("ReadInt64 = %v, %v", i, err)
	}
}

func TestMemoryErrors(t *testing.T) {
	m := dataset.NewMemory()
	m.PutFloat64("a.h5", "/data0", []float64{1, 2, 3})

	tests := []struct {
		name string
		read func() error
	}{
		{"missing dataset", func() error { _, err := m.ReadFloat64("a.h5", "/nope", 3); return err }},
		{"short read", func() error { _, err := m.ReadFloat64("a.h5", "/data0", 4); return err }},
		{"wrong type", func() error { _, err := m.ReadInt64("a.h5", "/data0", 3); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			if !errors.Is(err, dataset.ErrRead) {
				t.Errorf("err = %v, want ErrRead", err)
			}
			var re *dataset.ReadError
			if !errors.As(err, &re) || re.Container != "a.h5" {
				t.Errorf("err = %#v", err)
			}
		})
	}
}

func TestHDF5MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.h5")
	_, err := dataset.HDF5{}.ReadFloat64(missing, "/data0", 3)
	if !errors.Is(err, dataset.ErrRead) {
		t.Errorf("err = %v, want ErrRead", err)
	}
	_, err = dataset.HDF5{}.ReadInt64(missing, "/data1", 3)
	if !errors.Is(err, dataset.ErrRead) {
		t.Errorf("err = %v, want ErrRead", err)
	}
}

// writeH5 creates an HDF5 file holding one float64 dataset per entry of
// floats and one int64 dataset per entry of ints, all 1-D.
func writeH5(t *testing.T, path string, floats map[string][]float64, ints map[string][]int64) {
	t.Helper()
	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	if err != nil {
		t.Fatal(err)
	}
	for name, data := range floats {
		ds, err := fw.CreateDataset(name, hdf5.Float64, []uint64{uint64(len(data))})
		if err != nil {
			t.Fatal(err)
		}
		if err := ds.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	for name, data := range ints {
		ds, err := fw.CreateDataset(name, hdf5.Int64, []uint64{uint64(len(data))})
		if err != nil {
			t.Fatal(err)
		}
		if err := ds.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHDF5Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk_2d.h5")
	geom := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	writeH5(t, path,
		map[string][]float64{"/data0": geom, "/half": {1, 1.5}},
		map[string][]int64{"/data1": {5, 0, 1, 2, 3}},
	)

	for _, p := range []string{"/data0", "data0", "/data0/"} {
		got, err := dataset.HDF5{}.ReadFloat64(path, p, len(geom))
		if err != nil {
			t.Fatalf("ReadFloat64(%q): %v", p, err)
		}
		if !reflect.DeepEqual(got, geom) {
			t.Errorf("ReadFloat64(%q) = %v", p, got)
		}
	}

	for _, p := range []string{"/data1", "data1"} {
		got, err := dataset.HDF5{}.ReadInt64(path, p, 5)
		if err != nil {
			t.Fatalf("ReadInt64(%q): %v", p, err)
		}
		if !reflect.DeepEqual(got, []int64{5, 0, 1, 2, 3}) {
			t.Errorf("ReadInt64(%q) = %v", p, got)
		}
	}

	tests := []struct {
		name string
		read func() error
	}{
		{"fractional int", func() error { _, err := dataset.HDF5{}.ReadInt64(path, "/half", 2); return err }},
		{"wrong count", func() error { _, err := dataset.HDF5{}.ReadFloat64(path, "/data0", 9); return err }},
		{"no such dataset", func() error { _, err := dataset.HDF5{}.ReadInt64(path, "/data2", 5); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.read(); !errors.Is(err, dataset.ErrRead) {
				t.Errorf("err = %v, want ErrRead", err)
			}
		})
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	m := dataset.NewMemory()
	m.PutFloat64("a.h5", "/geom", []float64{1, 2, 3, 4})
	m.PutInt64("a.h5", "/topo", []int64{1, 0, 1})
	m.PutFloat64("b.h5", "/geom", []float64{5, 6, 7, 8})
	m.PutFloat64("c.h5", "/big", make([]float64, 11))
	src := &countingReader{Reader: m}
	c := dataset.NewCache(src, 10)

	read := func(container, path string, count int) {
		t.Helper()
		var err error
		if path == "/topo" {
			_, err = c.ReadInt64(container, path, count)
		} else {
			_, err = c.ReadFloat64(container, path, count)
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	read("a.h5", "/geom", 4)
	read("a.h5", "/topo", 3)
	if c.Len() != 2 || c.Size() != 7 {
		t.Fatalf("len %d size %d, want 2 and 7", c.Len(), c.Size())
	}

	// 7 + 4 > 10: a.h5:/geom goes.
	read("b.h5", "/geom", 4)
	if c.Len() != 2 || c.Size() != 7 {
		t.Errorf("len %d size %d after eviction", c.Len(), c.Size())
	}
	before := src.calls.Load()
	read("a.h5", "/topo", 3)
	read("b.h5", "/geom", 4)
	if src.calls.Load() != before {
		t.Error("recent buffers should still be cached")
	}
	read("a.h5", "/geom", 4)
	if src.calls.Load() != before+1 {
		t.Error("evicted buffer should be read again")
	}

	// Larger than the whole limit: served but not kept.
	read("c.h5", "/big", 11)
	if c.Size() > 10 {
		t.Errorf("size = %d, want <= 10", c.Size())
	}
	before = src.calls.Load()
	read("c.h5", "/big", 11)
	if src.calls.Load() != before+1 {
		t.Error("oversized buffer should not be cached")
	}
}

type countingReader struct {
	dataset.Reader
	calls atomic.Int64
}

func (c *countingReader) ReadFloat64(container, path string, count int) ([]float64, error) {
	c.calls.Add(1)
	return c.Reader.ReadFloat64(container, path, count)
}

func (c *countingReader) ReadInt64(container, path string, count int) ([]int64, error) {
	c.calls.Add(1)
	return c.Reader.ReadInt64(container, path, count)
}

func TestCacheReusesReads(t *testing.T) {
	m := dataset.NewMemory()
	m.PutFloat64("a.h5", "/data0", []float64{1, 2, 3})
	m.PutInt64("a.h5", "/data1", []int64{1, 0, 1})
	src := &countingReader{Reader: m}
	c := dataset.NewCache(src, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ReadFloat64("a.h5", "/data0", 3); err != nil {
				t.Error(err)
			}
			if _, err := c.ReadInt64("a.h5", "/data1", 3); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	// Racing goroutines may each miss once, but later reads are served from cache.
	before := src.calls.Load()
	if _, err := c.ReadFloat64("a.h5", "/data0/", 3); err != nil {
		t.Fatal(err)
	}
	if src.calls.Load() != before {
		t.Error("expected cached read for normalized path")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	m := dataset.NewMemory()
	c := dataset.NewCache(m, 0)
	if _, err := c.ReadFloat64("a.h5", "/data0", 1); !errors.Is(err, dataset.ErrRead) {
		t.Fatalf("err = %v", err)
	}
	m.PutFloat64("a.h5", "/data0", []float64{7})
	got, err := c.ReadFloat64("a.h5", "/data0", 1)
	if err != nil || got[0] != 7 {
		t.Errorf("after Put: %v, %v", got, err)
	}
}
