package grid

import (
	"testing"

	"github.com/nci/geomodel/interp"
)

func testVolume(t *testing.T, nLon, nLat, nDepth int) *GeoGrid {
	lon, lat, depth, shape := Meshgrid(
		interp.Linspace(10, 20, nLon),
		interp.Linspace(30, 40, nLat),
		interp.Linspace(-300, 0, nDepth))

	data := make([]float64, shape.Size())
	for i := range data {
		data[i] = depth[i] * 2
	}
	g, err := NewGeoGrid(Deg(lon), Deg(lat), Km(depth), shape,
		[]*Field{Scalar("Depthdata", data)}, map[string]string{"source": "synthetic"})
	if err != nil {
		t.Fatalf("volume construction failed: %v", err)
	}
	return g
}

func TestShapeClass(t *testing.T) {
	cases := []struct {
		shape Shape
		class Class
	}{
		{Shape{100}, PointSet},
		{Shape{0}, PointSet},
		{Shape{10, 10, 10}, VolumeGrid},
		{Shape{10, 10, 1}, SurfaceGrid},
		{Shape{1, 10, 10}, SurfaceGrid},
		{Shape{10, 1, 10}, SurfaceGrid},
	}
	for _, c := range cases {
		if got := c.shape.Class(); got != c.class {
			t.Errorf("shape %v: expecting %v, actual %v", []int(c.shape), c.class, got)
		}
	}

	if err := (Shape{2, 2}).Validate(); err == nil {
		t.Errorf("2-D shape accepted")
	}
	if err := (Shape{2, 0, 2}).Validate(); err == nil {
		t.Errorf("empty gridded axis accepted")
	}
}

func TestShapeIdx(t *testing.T) {
	s := Shape{3, 4, 5}
	if s.Size() != 60 {
		t.Errorf("expecting size 60, actual %v", s.Size())
	}
	if s.Idx(0, 0, 0) != 0 || s.Idx(2, 3, 4) != 59 {
		t.Errorf("index mapping broken: %v %v", s.Idx(0, 0, 0), s.Idx(2, 3, 4))
	}
	if s.Idx(1, 0, 0) != 1 || s.Idx(0, 1, 0) != 3 || s.Idx(0, 0, 1) != 12 {
		t.Errorf("axis strides broken")
	}
}

func TestConstructorValidation(t *testing.T) {
	shape := Shape{2, 2, 1}
	coord := make([]float64, 4)

	if _, err := NewGeoGrid(Deg(coord), Deg(coord), Km(coord[:3]), shape, nil, nil); err == nil {
		t.Errorf("short depth array accepted")
	} else if _, ok := err.(*ShapeMismatchError); !ok {
		t.Errorf("expecting ShapeMismatchError, actual %T", err)
	}

	if _, err := NewGeoGrid(Deg(coord), Deg(coord), Km(coord), shape,
		[]*Field{Scalar("v", coord[:2])}, nil); err == nil {
		t.Errorf("short field array accepted")
	}

	if _, err := NewGeoGrid(Deg(coord), Deg(coord), Km(coord), shape,
		[]*Field{{Name: "bad", Data: [][]float64{coord, coord}}}, nil); err == nil {
		t.Errorf("2-component field accepted")
	}
}

func TestWrapFields(t *testing.T) {
	fields, err := WrapFields([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("single array wrap failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != DefaultFieldName {
		t.Errorf("expecting one field named %q, actual %v", DefaultFieldName, fields)
	}

	if _, err := WrapFields([]float64{1}, []float64{2}); err == nil {
		t.Errorf("ambiguous unnamed tuple accepted")
	}

	if fields, err := WrapFields(); err != nil || fields != nil {
		t.Errorf("empty wrap: expecting nil, actual %v %v", fields, err)
	}
}

func TestNormalizeAttrs(t *testing.T) {
	attrs, err := NormalizeAttrs(map[interface{}]interface{}{"a": 1, "b": "x"})
	if err != nil {
		t.Fatalf("yaml-style attrs rejected: %v", err)
	}
	if attrs["a"] != "1" || attrs["b"] != "x" {
		t.Errorf("expecting {a:1 b:x}, actual %v", attrs)
	}

	if _, err := NormalizeAttrs([]string{"not", "a", "map"}); err == nil {
		t.Errorf("non-map attributes accepted")
	} else if _, ok := err.(*InvalidAttributesError); !ok {
		t.Errorf("expecting InvalidAttributesError, actual %T", err)
	}

	if _, err := NormalizeAttrs(map[interface{}]interface{}{1: "x"}); err == nil {
		t.Errorf("non-string key accepted")
	}

	if attrs, err := NormalizeAttrs(nil); err != nil || attrs != nil {
		t.Errorf("nil attrs: expecting nil, actual %v %v", attrs, err)
	}
}

func TestFieldLookup(t *testing.T) {
	g := testVolume(t, 3, 3, 3)
	if g.Field("Depthdata") == nil {
		t.Errorf("field lookup failed")
	}
	if g.Field("missing") != nil {
		t.Errorf("missing field returned")
	}
	if g.Field("Depthdata").IsVector() {
		t.Errorf("scalar field reported vector")
	}

	v := Vector("velocity", make([]float64, 27), make([]float64, 27), make([]float64, 27))
	if !v.IsVector() {
		t.Errorf("vector field not reported vector")
	}
	colors := &Field{Name: ColorsFieldName, Data: [][]float64{{1}, {2}, {3}}}
	if colors.IsVector() {
		t.Errorf("colors field subject to rotation")
	}
}

func TestExtentAndAxisVectors(t *testing.T) {
	g := testVolume(t, 11, 5, 7)
	min, max := Extent(g)
	if min[0] != 10 || max[0] != 20 || min[1] != 30 || max[1] != 40 || min[2] != -300 || max[2] != 0 {
		t.Errorf("extent wrong: %v %v", min, max)
	}

	a1, a2, a3 := AxisVectors(g)
	if len(a1) != 11 || len(a2) != 5 || len(a3) != 7 {
		t.Errorf("axis vector lengths wrong: %v %v %v", len(a1), len(a2), len(a3))
	}
	if a1[0] != 10 || a1[10] != 20 || a3[0] != -300 || a3[6] != 0 {
		t.Errorf("axis vector values wrong")
	}
}
