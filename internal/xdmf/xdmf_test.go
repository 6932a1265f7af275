package xdmf_test

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"xdmf-mesh-renderer/internal/xdmf"
)

const diskXDMF = `<?xml version="1.0"?>
<!DOCTYPE Xdmf SYSTEM "Xdmf.dtd" []>
<Xdmf Version="3.0" xmlns:xi="http://www.w3.org/2001/XInclude">
  <Domain>
    <Grid Name="mesh" GridType="Uniform">
      <Topology TopologyType="Quadrilateral" NumberOfElements="1" NodesPerElement="4">
        <DataItem Dimensions="1 4" NumberType="Int" Format="HDF">disk_2d.h5:/data1</DataItem>
      </Topology>
      <Geometry GeometryType="XY">
        <DataItem Dimensions="4 2" Format="HDF" Precision="8">
          disk_2d.h5:/data0
        </DataItem>
      </Geometry>
    </Grid>
  </Domain>
</Xdmf>`

func TestParseTree(t *testing.T) {
	root, err := xdmf.Parse(strings.NewReader(diskXDMF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Name() != "Xdmf" {
		t.Fatalf("root = %q, want Xdmf", root.Name())
	}
	grid := root.Child("Domain").Child("Grid")
	if grid == nil {
		t.Fatal("Domain > Grid not found")
	}
	topo := grid.Child("Topology")
	if v, _ := topo.Attr("NumberOfElements"); v != "1" {
		t.Errorf("NumberOfElements = %q", v)
	}
	if grid.Child("Attribute") != nil {
		t.Error("Child of missing name should be nil")
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	if _, err := xdmf.Parse(strings.NewReader("  ")); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestResolveLocator(t *testing.T) {
	tests := []struct {
		in        string
		container string
		path      string
	}{
		{"disk_2d.h5:/data0", "disk_2d.h5", "/data0"},
		{"../data/model_3d.h5:/data1", "../data/model_3d.h5", "/data1"},
		{"a.h5:/grp:odd", "a.h5", "/grp:odd"},
		{"a.h5:", "a.h5", ""},
		{":/x", "", "/x"},
	}
	for _, tt := range tests {
		loc, err := xdmf.ResolveLocator(tt.in)
		if err != nil {
			t.Errorf("ResolveLocator(%q): %v", tt.in, err)
			continue
		}
		if loc.Container != tt.container || loc.Path != tt.path {
			t.Errorf("ResolveLocator(%q) = %+v", tt.in, loc)
		}
		if loc.String() != tt.in {
			t.Errorf("round trip %q -> %q", tt.in, loc.String())
		}
	}
}

func TestResolveLocatorErrors(t *testing.T) {
	if _, err := xdmf.ResolveLocator("no-colon.h5"); !errors.Is(err, xdmf.ErrMalformedLocator) {
		t.Errorf("missing colon: err = %v", err)
	}
	if _, err := xdmf.ResolveLocatorStrict("a.h5:"); !errors.Is(err, xdmf.ErrMalformedLocator) {
		t.Errorf("strict empty path: err = %v", err)
	}
	if _, err := xdmf.ResolveLocatorStrict("a.h5:/d"); err != nil {
		t.Errorf("strict valid: %v", err)
	}
}

func item(attrs map[string]string, text string) *xdmf.Element {
	return &xdmf.Element{XMLName: "DataItem", Attrs: attrs, CharData: text}
}

func TestParseDataItem(t *testing.T) {
	n := item(map[string]string{"Format": "HDF", "Dimensions": "30574 3", "NumberType": "Float", "Precision": "8"}, "\n  model.h5:/data0 \t\n")
	got, err := xdmf.ParseDataItem(n)
	if err != nil {
		t.Fatalf("ParseDataItem: %v", err)
	}
	want := xdmf.DataItem{Dims: []uint64{30574, 3}, Locator: "model.h5:/data0", NumberType: "Float", Precision: 8}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if n, ok := got.Count(); !ok || n != 30574*3 {
		t.Errorf("Count = %d, %v", n, ok)
	}
}

func TestDataItemCount(t *testing.T) {
	tests := []struct {
		dims []uint64
		want uint64
		ok   bool
	}{
		{nil, 0, true},
		{[]uint64{16}, 16, true},
		{[]uint64{4, 0, 3}, 0, true},
		{[]uint64{1 << 62, 4}, 0, false},
		{[]uint64{6148914691236517206, 3}, 0, false},
		{[]uint64{math.MaxUint64}, 0, false},
		{[]uint64{1 << 31, 1 << 31, 4}, 0, false},
	}
	for _, tt := range tests {
		n, ok := xdmf.DataItem{Dims: tt.dims}.Count()
		if n != tt.want || ok != tt.ok {
			t.Errorf("Count(%v) = %d, %v, want %d, %v", tt.dims, n, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDataItemErrors(t *testing.T) {
	tests := []struct {
		name string
		node *xdmf.Element
		want error
	}{
		{"no format", item(map[string]string{"Dimensions": "1"}, "a:/b"), xdmf.ErrUnsupportedFormat},
		{"xml format", item(map[string]string{"Format": "XML", "Dimensions": "1"}, "1"), xdmf.ErrUnsupportedFormat},
		{"no dims", item(map[string]string{"Format": "HDF"}, "a:/b"), xdmf.ErrMissingDimensions},
		{"bad dims", item(map[string]string{"Format": "HDF", "Dimensions": "4 -2"}, "a:/b"), xdmf.ErrMissingDimensions},
		{"blank dims", item(map[string]string{"Format": "HDF", "Dimensions": " "}, "a:/b"), xdmf.ErrMissingDimensions},
		{"no text", item(map[string]string{"Format": "HDF", "Dimensions": "4 3"}, " \n "), xdmf.ErrMissingLocator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := xdmf.ParseDataItem(tt.node)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := xdmf.ParseDataItem(nil); !errors.Is(err, xdmf.ErrMissingElement) {
		t.Errorf("nil node: err = %v", err)
	}
}

func TestParseDimsOrder(t *testing.T) {
	for _, pair := range [][2]uint64{{0, 0}, {4, 2}, {30574, 3}, {1, 4}} {
		s := strconv.FormatUint(pair[0], 10) + " " + strconv.FormatUint(pair[1], 10)
		dims, err := xdmf.ParseDims(s)
		if err != nil {
			t.Fatalf("ParseDims(%q): %v", s, err)
		}
		if !reflect.DeepEqual(dims, []uint64{pair[0], pair[1]}) {
			t.Errorf("ParseDims(%q) = %v", s, dims)
		}
	}
}
