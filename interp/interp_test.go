package interp

import (
	"math"
	"testing"
)

func TestAxisReversal(t *testing.T) {
	inc, err := NewAxis([]float64{0, 10, 20, 30})
	if err != nil {
		t.Fatalf("axis construction failed: %v", err)
	}
	if inc.Reversed() {
		t.Errorf("increasing axis reported reversed")
	}

	dec, err := NewAxis([]float64{0, -100, -200, -300})
	if err != nil {
		t.Fatalf("axis construction failed: %v", err)
	}
	if !dec.Reversed() {
		t.Errorf("decreasing axis not reported reversed")
	}
	if dec.Min() != -300 || dec.Max() != 0 {
		t.Errorf("expecting range [-300, 0], actual [%v, %v]", dec.Min(), dec.Max())
	}

	if _, err := NewAxis([]float64{0, 1, 1, 2}); err == nil {
		t.Errorf("non-monotonic axis accepted")
	}
	if _, err := NewAxis(nil); err == nil {
		t.Errorf("empty axis accepted")
	}
	if _, err := NewAxis([]float64{5}); err != nil {
		t.Errorf("single-value axis rejected: %v", err)
	}
}

func TestAxisNearest(t *testing.T) {
	inc, _ := NewAxis([]float64{-300, -250, -200, -150, -100, -50, 0})
	if idx := inc.Nearest(-100); idx != 4 {
		t.Errorf("expecting index 4, actual %v", idx)
	}
	if idx := inc.Nearest(-120); idx != 4 {
		t.Errorf("expecting index 4, actual %v", idx)
	}
	if idx := inc.Nearest(-1000); idx != 0 {
		t.Errorf("expecting index 0, actual %v", idx)
	}

	// Same values stored deepest-last.
	dec, _ := NewAxis([]float64{0, -50, -100, -150, -200, -250, -300})
	if idx := dec.Nearest(-100); idx != 2 {
		t.Errorf("expecting original index 2, actual %v", idx)
	}
	if idx := dec.Nearest(10); idx != 0 {
		t.Errorf("expecting original index 0, actual %v", idx)
	}
}

func TestAxisBracket(t *testing.T) {
	inc, _ := NewAxis([]float64{0, 1, 2, 3, 4})
	i0, i1 := inc.Bracket(0.5, 2.5)
	if i0 != 0 || i1 != 3 {
		t.Errorf("expecting [0, 3], actual [%v, %v]", i0, i1)
	}
	i0, i1 = inc.Bracket(0, 4)
	if i0 != 0 || i1 != 4 {
		t.Errorf("expecting [0, 4], actual [%v, %v]", i0, i1)
	}

	dec, _ := NewAxis([]float64{4, 3, 2, 1, 0})
	i0, i1 = dec.Bracket(0.5, 2.5)
	if i0 != 1 || i1 != 4 {
		t.Errorf("expecting [1, 4], actual [%v, %v]", i0, i1)
	}
}

func TestLinspace(t *testing.T) {
	v := Linspace(0, 1, 5)
	expected := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range expected {
		if math.Abs(v[i]-expected[i]) > 1e-12 {
			t.Errorf("expecting %v, actual %v", expected, v)
			break
		}
	}
	if one := Linspace(3, 9, 1); len(one) != 1 || one[0] != 3 {
		t.Errorf("expecting [3], actual %v", one)
	}
}

func TestRegularNodeIdentity(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{10, 20}
	data := []float64{1, 2, 3, 4, 5, 6} // idx = i + 3*j

	r, err := NewRegular([][]float64{xs, ys}, data, Flat, 0)
	if err != nil {
		t.Fatalf("interpolator construction failed: %v", err)
	}
	for j, y := range ys {
		for i, x := range xs {
			v := r.At(x, y)
			want := data[i+3*j]
			if math.Abs(v-want) > 1e-12 {
				t.Errorf("node (%v,%v): expecting %v, actual %v", x, y, want, v)
			}
		}
	}
	if v := r.At(0.5, 10); math.Abs(v-1.5) > 1e-12 {
		t.Errorf("midpoint: expecting 1.5, actual %v", v)
	}
}

func TestRegularExtrapolation(t *testing.T) {
	xs := []float64{0, 1}
	data := []float64{5, 7}

	flat, _ := NewRegular([][]float64{xs}, data, Flat, 0)
	if v := flat.At(-10); v != 5 {
		t.Errorf("flat extrapolation below: expecting 5, actual %v", v)
	}
	if v := flat.At(10); v != 7 {
		t.Errorf("flat extrapolation above: expecting 7, actual %v", v)
	}

	fill, _ := NaNFill([][]float64{xs}, data)
	if v := fill.At(10); !math.IsNaN(v) {
		t.Errorf("fill extrapolation: expecting NaN, actual %v", v)
	}
	if v := fill.At(0.5); math.Abs(v-6) > 1e-12 {
		t.Errorf("in-hull query: expecting 6, actual %v", v)
	}
}

func TestRegularReversedAxis(t *testing.T) {
	depth := []float64{0, -100, -200, -300}
	data := []float64{0, -200, -400, -600}

	r, err := NewRegular([][]float64{depth}, data, Flat, 0)
	if err != nil {
		t.Fatalf("interpolator construction failed: %v", err)
	}
	if v := r.At(-150); math.Abs(v-(-300)) > 1e-12 {
		t.Errorf("reversed axis: expecting -300, actual %v", v)
	}
	if v := r.At(-300); math.Abs(v-(-600)) > 1e-12 {
		t.Errorf("reversed axis node: expecting -600, actual %v", v)
	}
}

func TestRegularTrilinear(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{0, 1}
	zs := []float64{0, 1}
	// value = x + 10*y + 100*z at the corners; trilinear reproduces it
	// exactly everywhere inside.
	data := make([]float64, 8)
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				data[i+2*(j+2*k)] = float64(i) + 10*float64(j) + 100*float64(k)
			}
		}
	}
	r, _ := NewRegular([][]float64{xs, ys, zs}, data, Flat, 0)
	if v := r.At(0.25, 0.5, 0.75); math.Abs(v-(0.25+5+75)) > 1e-12 {
		t.Errorf("expecting %v, actual %v", 0.25+5+75, v)
	}
}
