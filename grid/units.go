package grid

import (
	"fmt"
)

// Unit tags the physical unit of a coordinate or field array.
type Unit string

const (
	Kilometer Unit = "km"
	Meter     Unit = "m"
	Degree    Unit = "deg"
	NoUnit    Unit = ""
)

// UnitArray is a numeric array bound to a physical unit. Length
// coordinates are canonically kilometers except UTM depths which are
// meters; angles are degrees.
type UnitArray struct {
	Data []float64
	Unit Unit
}

// Km wraps a bare array with the default length unit.
func Km(data []float64) *UnitArray {
	return &UnitArray{Data: data, Unit: Kilometer}
}

func Meters(data []float64) *UnitArray {
	return &UnitArray{Data: data, Unit: Meter}
}

func Deg(data []float64) *UnitArray {
	return &UnitArray{Data: data, Unit: Degree}
}

func lengthFactor(from, to Unit) (float64, bool) {
	if from == to {
		return 1.0, true
	}
	if from == Kilometer && to == Meter {
		return 1000.0, true
	}
	if from == Meter && to == Kilometer {
		return 0.001, true
	}
	return 0, false
}

// Compatible reports whether two units may be combined arithmetically.
func Compatible(a, b Unit) bool {
	_, ok := lengthFactor(a, b)
	return ok
}

// ConvertTo returns a new array expressed in the requested unit.
// Degrees and unitless arrays only convert to themselves.
func (a *UnitArray) ConvertTo(to Unit) (*UnitArray, error) {
	factor, ok := lengthFactor(a.Unit, to)
	if !ok {
		return nil, fmt.Errorf("incompatible unit conversion: %q to %q", a.Unit, to)
	}
	if factor == 1.0 {
		out := make([]float64, len(a.Data))
		copy(out, a.Data)
		return &UnitArray{Data: out, Unit: to}, nil
	}
	out := make([]float64, len(a.Data))
	for i, v := range a.Data {
		out[i] = v * factor
	}
	return &UnitArray{Data: out, Unit: to}, nil
}

// Add returns the elementwise sum of two unit-tagged arrays, converting
// b into a's unit first.
func (a *UnitArray) Add(b *UnitArray) (*UnitArray, error) {
	bc, err := b.ConvertTo(a.Unit)
	if err != nil {
		return nil, err
	}
	if len(a.Data) != len(bc.Data) {
		return nil, fmt.Errorf("unit array length mismatch: %v vs %v", len(a.Data), len(bc.Data))
	}
	out := make([]float64, len(a.Data))
	for i, v := range a.Data {
		out[i] = v + bc.Data[i]
	}
	return &UnitArray{Data: out, Unit: a.Unit}, nil
}

// MinMax returns the value range of the array.
func (a *UnitArray) MinMax() (float64, float64) {
	if len(a.Data) == 0 {
		return 0, 0
	}
	min, max := a.Data[0], a.Data[0]
	for _, v := range a.Data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
