// Package resample implements bounding-box subvolume extraction with
// either nearest-index slicing or full regular-grid interpolation. The
// voting engine reuses the interpolation mode to align heterogeneous
// datasets onto one lattice.
package resample

import (
	"math"

	"github.com/nci/geomodel/grid"
	"github.com/nci/geomodel/interp"
)

// Bounds holds per-axis (min, max) requests. Axes without Has set
// default to the dataset's own extent.
type Bounds struct {
	Min, Max [3]float64
	Has      [3]bool
}

// Axis sets the bounds of one axis and returns the updated value for
// chaining literals.
func (b Bounds) Axis(axis int, min, max float64) Bounds {
	b.Min[axis] = min
	b.Max[axis] = max
	b.Has[axis] = true
	return b
}

// Options controls the extraction mode.
type Options struct {
	// Interpolate resamples onto a regular grid spanning exactly the
	// requested bounds; otherwise the nearest bracketing index box is
	// extracted verbatim.
	Interpolate bool
	// N is the per-axis resolution in interpolation mode. Zero entries
	// default to the source axis length.
	N [3]int
}

func (b Bounds) resolve(min, max [3]float64) ([3]float64, [3]float64) {
	lo, hi := min, max
	for ax := 0; ax < 3; ax++ {
		if b.Has[ax] {
			lo[ax], hi[ax] = b.Min[ax], b.Max[ax]
			if lo[ax] > hi[ax] {
				lo[ax], hi[ax] = hi[ax], lo[ax]
			}
		}
	}
	return lo, hi
}

type arrays struct {
	c1, c2, c3 []float64
	shape      grid.Shape
	fields     []*grid.Field
}

// Subvolume extracts a bounding box from a geographic grid.
func Subvolume(g *grid.GeoGrid, b Bounds, o Options) (*grid.GeoGrid, error) {
	out, err := subvolume(g, b, o)
	if err != nil {
		return nil, err
	}
	return grid.NewGeoGrid(grid.Deg(out.c1), grid.Deg(out.c2), grid.Km(out.c3),
		out.shape, out.fields, grid.CloneAttrs(g.Attrs()))
}

// SubvolumeLocal extracts a bounding box from a local-Cartesian grid.
func SubvolumeLocal(g *grid.LocalGrid, b Bounds, o Options) (*grid.LocalGrid, error) {
	out, err := subvolume(g, b, o)
	if err != nil {
		return nil, err
	}
	return grid.NewLocalGrid(grid.Km(out.c1), grid.Km(out.c2), grid.Km(out.c3),
		out.shape, out.fields, grid.CloneAttrs(g.Attrs()))
}

func subvolume(g grid.Grid, b Bounds, o Options) (*arrays, error) {
	s := g.Shape()
	switch s.Class() {
	case grid.PointSet:
		return subvolumePoints(g, b)
	case grid.SurfaceGrid:
		if o.Interpolate {
			return resampleSurface(g, b, o)
		}
		return sliceBox(g, b)
	default:
		if o.Interpolate {
			return resampleVolume(g, b, o)
		}
		return sliceBox(g, b)
	}
}

// sliceBox finds, per axis, the index pair bracketing the requested
// bounds (direction-aware for reversed axes) and extracts that index
// box verbatim, fields included.
func sliceBox(g grid.Grid, b Bounds) (*arrays, error) {
	s := g.Shape()
	c1, c2, c3 := g.Coords()
	min, max := grid.Extent(g)
	lo, hi := b.resolve(min, max)

	axisVecs := [3][]float64{
		grid.AxisVector(c1.Data, s, 0),
		grid.AxisVector(c2.Data, s, 1),
		grid.AxisVector(c3.Data, s, 2),
	}

	var i0, i1 [3]int
	for ax := 0; ax < 3; ax++ {
		axis, err := interp.NewAxis(axisVecs[ax])
		if err != nil {
			return nil, err
		}
		i0[ax], i1[ax] = axis.Bracket(lo[ax], hi[ax])
	}

	ns := grid.Shape{i1[0] - i0[0] + 1, i1[1] - i0[1] + 1, i1[2] - i0[2] + 1}
	pick := func(src []float64) []float64 {
		out := make([]float64, ns.Size())
		for k := 0; k < ns[2]; k++ {
			for j := 0; j < ns[1]; j++ {
				for i := 0; i < ns[0]; i++ {
					out[ns.Idx(i, j, k)] = src[s.Idx(i+i0[0], j+i0[1], k+i0[2])]
				}
			}
		}
		return out
	}

	out := &arrays{c1: pick(c1.Data), c2: pick(c2.Data), c3: pick(c3.Data), shape: ns}
	for _, f := range g.Fields() {
		nf := &grid.Field{Name: f.Name, Data: make([][]float64, len(f.Data))}
		for c, comp := range f.Data {
			nf.Data[c] = pick(comp)
		}
		out.fields = append(out.fields, nf)
	}
	return out, nil
}

// resampleVolume builds a regular grid spanning exactly the requested
// bounds and trilinearly resamples every field with flat extrapolation.
func resampleVolume(g grid.Grid, b Bounds, o Options) (*arrays, error) {
	s := g.Shape()
	c1, c2, c3 := g.Coords()
	min, max := grid.Extent(g)
	lo, hi := b.resolve(min, max)

	srcAxes := [][]float64{
		grid.AxisVector(c1.Data, s, 0),
		grid.AxisVector(c2.Data, s, 1),
		grid.AxisVector(c3.Data, s, 2),
	}

	var newAxes [3][]float64
	for ax := 0; ax < 3; ax++ {
		n := o.N[ax]
		if n <= 0 {
			n = s[ax]
		}
		newAxes[ax] = interp.Linspace(lo[ax], hi[ax], n)
	}

	nc1, nc2, nc3, ns := grid.Meshgrid(newAxes[0], newAxes[1], newAxes[2])
	out := &arrays{c1: nc1, c2: nc2, c3: nc3, shape: ns}

	for _, f := range g.Fields() {
		nf := &grid.Field{Name: f.Name, Data: make([][]float64, len(f.Data))}
		for c, comp := range f.Data {
			itp, err := interp.NewRegular(srcAxes, comp, interp.Flat, 0)
			if err != nil {
				return nil, err
			}
			vals := make([]float64, ns.Size())
			for k := 0; k < ns[2]; k++ {
				for j := 0; j < ns[1]; j++ {
					for i := 0; i < ns[0]; i++ {
						vals[ns.Idx(i, j, k)] = itp.At(newAxes[0][i], newAxes[1][j], newAxes[2][k])
					}
				}
			}
			nf.Data[c] = vals
		}
		out.fields = append(out.fields, nf)
	}
	return out, nil
}

// resampleSurface bilinearly resamples a surface's depth coordinate and
// fields onto a new horizontal lattice. Queries outside the surface's
// domain become NaN.
func resampleSurface(g grid.Grid, b Bounds, o Options) (*arrays, error) {
	s := g.Shape()
	c1, c2, c3 := g.Coords()
	min, max := grid.Extent(g)
	lo, hi := b.resolve(min, max)

	srcAxes := [][]float64{
		grid.AxisVector(c1.Data, s, 0),
		grid.AxisVector(c2.Data, s, 1),
	}

	n1, n2 := o.N[0], o.N[1]
	if n1 <= 0 {
		n1 = s[0]
	}
	if n2 <= 0 {
		n2 = s[1]
	}
	a1 := interp.Linspace(lo[0], hi[0], n1)
	a2 := interp.Linspace(lo[1], hi[1], n2)

	ns := grid.Shape{n1, n2, 1}
	size := ns.Size()
	out := &arrays{shape: ns}
	out.c1 = make([]float64, size)
	out.c2 = make([]float64, size)
	out.c3 = make([]float64, size)

	depthItp, err := interp.NaNFill(srcAxes, c3.Data)
	if err != nil {
		return nil, err
	}
	for j := 0; j < n2; j++ {
		for i := 0; i < n1; i++ {
			idx := ns.Idx(i, j, 0)
			out.c1[idx] = a1[i]
			out.c2[idx] = a2[j]
			out.c3[idx] = depthItp.At(a1[i], a2[j])
		}
	}

	for _, f := range g.Fields() {
		nf := &grid.Field{Name: f.Name, Data: make([][]float64, len(f.Data))}
		for c, comp := range f.Data {
			itp, err := interp.NaNFill(srcAxes, comp)
			if err != nil {
				return nil, err
			}
			vals := make([]float64, size)
			for j := 0; j < n2; j++ {
				for i := 0; i < n1; i++ {
					vals[ns.Idx(i, j, 0)] = itp.At(a1[i], a2[j])
				}
			}
			nf.Data[c] = vals
		}
		out.fields = append(out.fields, nf)
	}
	return out, nil
}

// subvolumePoints filters a point set to the members inside the box.
func subvolumePoints(g grid.Grid, b Bounds) (*arrays, error) {
	c1, c2, c3 := g.Coords()
	min, max := grid.Extent(g)
	lo, hi := b.resolve(min, max)

	var keep []int
	for i := range c1.Data {
		if c1.Data[i] < lo[0] || c1.Data[i] > hi[0] {
			continue
		}
		if c2.Data[i] < lo[1] || c2.Data[i] > hi[1] {
			continue
		}
		if c3.Data[i] < lo[2] || c3.Data[i] > hi[2] {
			continue
		}
		if math.IsNaN(c1.Data[i]) || math.IsNaN(c2.Data[i]) || math.IsNaN(c3.Data[i]) {
			continue
		}
		keep = append(keep, i)
	}

	pick := func(src []float64) []float64 {
		out := make([]float64, len(keep))
		for n, i := range keep {
			out[n] = src[i]
		}
		return out
	}

	out := &arrays{c1: pick(c1.Data), c2: pick(c2.Data), c3: pick(c3.Data), shape: grid.Shape{len(keep)}}
	for _, f := range g.Fields() {
		nf := &grid.Field{Name: f.Name, Data: make([][]float64, len(f.Data))}
		for c, comp := range f.Data {
			nf.Data[c] = pick(comp)
		}
		out.fields = append(out.fields, nf)
	}
	return out, nil
}
