package grid

import (
	"math"
	"testing"
)

func TestUnitConversion(t *testing.T) {
	km := Km([]float64{1, 2.5})
	m, err := km.ConvertTo(Meter)
	if err != nil {
		t.Fatalf("km to m failed: %v", err)
	}
	if m.Data[0] != 1000 || m.Data[1] != 2500 {
		t.Errorf("expecting [1000 2500], actual %v", m.Data)
	}

	back, err := m.ConvertTo(Kilometer)
	if err != nil {
		t.Fatalf("m to km failed: %v", err)
	}
	for i := range km.Data {
		if math.Abs(back.Data[i]-km.Data[i]) > 1e-12 {
			t.Errorf("round trip: expecting %v, actual %v", km.Data, back.Data)
		}
	}

	deg := Deg([]float64{45})
	if _, err := deg.ConvertTo(Kilometer); err == nil {
		t.Errorf("degrees converted to kilometers without error")
	}
	same, err := deg.ConvertTo(Degree)
	if err != nil || same.Data[0] != 45 {
		t.Errorf("degree identity conversion failed: %v %v", same, err)
	}
}

func TestUnitCompatibility(t *testing.T) {
	if !Compatible(Kilometer, Meter) {
		t.Errorf("km and m not compatible")
	}
	if Compatible(Degree, Meter) {
		t.Errorf("deg and m compatible")
	}

	a := Km([]float64{1, 2})
	b := Meters([]float64{500, 500})
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if sum.Unit != Kilometer || sum.Data[0] != 1.5 || sum.Data[1] != 2.5 {
		t.Errorf("expecting [1.5 2.5] km, actual %v %v", sum.Data, sum.Unit)
	}

	if _, err := a.Add(Deg([]float64{1, 2})); err == nil {
		t.Errorf("adding degrees to kilometers did not fail")
	}
}
