package interp

import (
	"fmt"
	"math"
)

// Policy selects the out-of-hull behaviour of a Regular interpolator.
// Interpolation never errors for out-of-hull queries.
type Policy int

const (
	// Flat clamps queries to the hull, returning the nearest in-hull
	// value.
	Flat Policy = iota
	// Fill returns a constant fill value (NaN unless configured) for
	// out-of-hull queries.
	Fill
)

// Regular evaluates multilinear interpolation of a value array over
// one to three monotonic coordinate axes. The value array is flat in
// storage order with axis 1 fastest: idx = i + n1*(j + n2*k).
type Regular struct {
	axes    []*Axis
	strides []int
	data    []float64
	policy  Policy
	fill    float64
}

// NewRegular builds an interpolator from per-axis coordinate vectors
// and a matching value array. Decreasing axes are handled internally.
func NewRegular(axes [][]float64, data []float64, policy Policy, fill float64) (*Regular, error) {
	if len(axes) < 1 || len(axes) > 3 {
		return nil, fmt.Errorf("interpolator supports 1 to 3 axes, got %v", len(axes))
	}
	r := &Regular{policy: policy, fill: fill, data: data}
	size := 1
	for _, v := range axes {
		ax, err := NewAxis(v)
		if err != nil {
			return nil, err
		}
		r.axes = append(r.axes, ax)
		r.strides = append(r.strides, size)
		size *= ax.Len()
	}
	if len(data) != size {
		return nil, fmt.Errorf("value array has %v elements, axes imply %v", len(data), size)
	}
	return r, nil
}

// NaNFill builds a Fill-policy interpolator whose out-of-hull value is
// NaN, the conventional "undefined" marker.
func NaNFill(axes [][]float64, data []float64) (*Regular, error) {
	return NewRegular(axes, data, Fill, math.NaN())
}

// At evaluates the interpolant at one query point, one coordinate per
// axis.
func (r *Regular) At(q ...float64) float64 {
	if len(q) != len(r.axes) {
		return math.NaN()
	}

	var cells [3]int
	var fracs [3]float64
	for d, ax := range r.axes {
		i, t, inside := ax.cell(q[d])
		if !inside && ax.Len() > 1 {
			if r.policy == Fill {
				return r.fill
			}
			// Flat: cell already clamped to the hull edge.
		}
		if !inside && ax.Len() == 1 && r.policy == Fill {
			return r.fill
		}
		cells[d] = i
		fracs[d] = t
	}

	sum := 0.0
	corners := 1 << len(r.axes)
	for c := 0; c < corners; c++ {
		w := 1.0
		off := 0
		for d, ax := range r.axes {
			i := cells[d]
			t := fracs[d]
			if c&(1<<d) != 0 {
				w *= t
				i++
				if i > ax.Len()-1 {
					i = ax.Len() - 1
				}
			} else {
				w *= 1 - t
			}
			off += ax.origIndex(i) * r.strides[d]
		}
		if w != 0 {
			sum += w * r.data[off]
		}
	}
	return sum
}
