package grid

import (
	"fmt"
)

// Class is the derived dataset shape class. It is re-derived from the
// current array shape on every call and never cached.
type Class int

const (
	PointSet Class = iota
	SurfaceGrid
	VolumeGrid
)

func (c Class) String() string {
	switch c {
	case PointSet:
		return "point"
	case SurfaceGrid:
		return "surface"
	case VolumeGrid:
		return "volume"
	}
	return "unknown"
}

// Shape describes the coordinate array layout: a single dimension for
// point sets, or three dimensions ordered (lon/x, lat/y, depth/z).
// 3-D arrays are stored row-major with axis 1 fastest:
// idx = i + n1*(j + n2*k).
type Shape []int

func (s Shape) Validate() error {
	if len(s) != 1 && len(s) != 3 {
		return fmt.Errorf("shape must have 1 or 3 dimensions, got %v", len(s))
	}
	// Empty point sets are legal data (e.g. a band selection that
	// retained nothing); gridded axes must be non-empty.
	minDim := 1
	if len(s) == 1 {
		minDim = 0
	}
	for _, n := range s {
		if n < minDim {
			return fmt.Errorf("shape dimensions must be positive, got %v", []int(s))
		}
	}
	return nil
}

// Class derives the shape class: point for 1-D arrays, surface when
// exactly one of the three axes has length 1, volume otherwise.
func (s Shape) Class() Class {
	if len(s) == 1 {
		return PointSet
	}
	singletons := 0
	for _, n := range s {
		if n == 1 {
			singletons++
		}
	}
	if singletons == 1 {
		return SurfaceGrid
	}
	return VolumeGrid
}

// Size is the total number of elements.
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Idx maps 3-D indices to the flat offset.
func (s Shape) Idx(i, j, k int) int {
	return i + s[0]*(j+s[1]*k)
}

func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}
