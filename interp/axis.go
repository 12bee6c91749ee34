// Package interp provides regular-grid linear interpolation over
// monotonic coordinate axes, with configurable out-of-hull behaviour.
// Depth-like axes may be stored increasing or decreasing; Axis
// normalizes them to increasing order once and maps results back, so
// every interpolation and index search handles both orderings through
// one code path.
package interp

import (
	"fmt"
	"math"
	"sort"
)

// Linspace returns n evenly spaced values from lo to hi inclusive.
// n must be at least 1; n == 1 returns lo.
func Linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Axis is a monotonic coordinate axis normalized to increasing order.
// Index results refer to the original storage order.
type Axis struct {
	vals     []float64
	reversed bool
}

// NewAxis wraps a strictly monotonic coordinate vector, increasing or
// decreasing. Single-value axes are allowed (degenerate dimensions).
func NewAxis(v []float64) (*Axis, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("axis must have at least one value")
	}
	reversed := len(v) > 1 && v[len(v)-1] < v[0]
	vals := make([]float64, len(v))
	if reversed {
		for i, x := range v {
			vals[len(v)-1-i] = x
		}
	} else {
		copy(vals, v)
	}
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			return nil, fmt.Errorf("axis values must be strictly monotonic")
		}
	}
	return &Axis{vals: vals, reversed: reversed}, nil
}

func (a *Axis) Len() int       { return len(a.vals) }
func (a *Axis) Reversed() bool { return a.reversed }
func (a *Axis) Min() float64   { return a.vals[0] }
func (a *Axis) Max() float64   { return a.vals[len(a.vals)-1] }

// Contains reports whether a value lies within the axis range.
func (a *Axis) Contains(q float64) bool {
	return q >= a.Min() && q <= a.Max()
}

// origIndex maps an increasing-order index back to the storage order.
func (a *Axis) origIndex(i int) int {
	if a.reversed {
		return len(a.vals) - 1 - i
	}
	return i
}

// Nearest returns the storage-order index of the axis value closest to
// q.
func (a *Axis) Nearest(q float64) int {
	i := sort.SearchFloat64s(a.vals, q)
	if i >= len(a.vals) {
		i = len(a.vals) - 1
	}
	if i > 0 && math.Abs(q-a.vals[i-1]) <= math.Abs(a.vals[i]-q) {
		i--
	}
	return a.origIndex(i)
}

// Bracket returns the inclusive storage-order index range [i0, i1]
// whose values just cover [lo, hi], stepping one node outwards on each
// side when the bounds fall between nodes. i0 <= i1 regardless of the
// storage direction.
func (a *Axis) Bracket(lo, hi float64) (int, int) {
	if lo > hi {
		lo, hi = hi, lo
	}
	n := len(a.vals)
	iLo := sort.SearchFloat64s(a.vals, lo)
	if iLo >= n {
		iLo = n - 1
	} else if iLo > 0 && a.vals[iLo] > lo {
		iLo--
	}
	iHi := sort.SearchFloat64s(a.vals, hi)
	if iHi >= n {
		iHi = n - 1
	}
	o0 := a.origIndex(iLo)
	o1 := a.origIndex(iHi)
	if o0 > o1 {
		o0, o1 = o1, o0
	}
	return o0, o1
}

// cell locates q in the increasing frame: lower node index, fractional
// position, and whether q is inside the axis range.
func (a *Axis) cell(q float64) (int, float64, bool) {
	n := len(a.vals)
	if n == 1 {
		return 0, 0, q == a.vals[0]
	}
	inside := a.Contains(q)
	if q <= a.vals[0] {
		return 0, 0, inside
	}
	if q >= a.vals[n-1] {
		return n - 2, 1, inside
	}
	i := sort.SearchFloat64s(a.vals, q) - 1
	if i < 0 {
		i = 0
	}
	t := (q - a.vals[i]) / (a.vals[i+1] - a.vals[i])
	return i, t, inside
}
