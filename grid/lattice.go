package grid

import (
	"fmt"
	"math"

	"github.com/nci/geomodel/interp"
)

// Meshgrid expands three 1-D axis vectors into full 3-D coordinate
// arrays following the (lon/x, lat/y, depth/z) axis convention.
func Meshgrid(a1, a2, a3 []float64) (c1, c2, c3 []float64, s Shape) {
	s = Shape{len(a1), len(a2), len(a3)}
	size := s.Size()
	c1 = make([]float64, size)
	c2 = make([]float64, size)
	c3 = make([]float64, size)
	for k := 0; k < s[2]; k++ {
		for j := 0; j < s[1]; j++ {
			for i := 0; i < s[0]; i++ {
				idx := s.Idx(i, j, k)
				c1[idx] = a1[i]
				c2[idx] = a2[j]
				c3[idx] = a3[k]
			}
		}
	}
	return
}

// Lattice describes a regular axis-aligned grid: per-axis count,
// constant spacing and extent, with both vertex and cell-center
// coordinate vectors. It synthesizes default grids and backs the
// above/below-surface spatial queries.
type Lattice struct {
	N        [3]int
	Min, Max [3]float64
	Spacing  [3]float64
}

// NewLattice builds a lattice descriptor. Spacing is constant per axis;
// stretched grids are not representable here.
func NewLattice(min, max [3]float64, n [3]int) (*Lattice, error) {
	l := &Lattice{N: n, Min: min, Max: max}
	for ax := 0; ax < 3; ax++ {
		if n[ax] < 1 {
			return nil, fmt.Errorf("lattice axis %v count must be positive, got %v", ax+1, n[ax])
		}
		if max[ax] < min[ax] {
			return nil, fmt.Errorf("lattice axis %v extent is inverted: [%v, %v]", ax+1, min[ax], max[ax])
		}
		if n[ax] > 1 {
			l.Spacing[ax] = (max[ax] - min[ax]) / float64(n[ax]-1)
		}
	}
	return l, nil
}

// Vertices returns the vertex coordinate vector of one axis.
func (l *Lattice) Vertices(axis int) []float64 {
	return interp.Linspace(l.Min[axis], l.Max[axis], l.N[axis])
}

// Centers returns the cell-center coordinate vector of one axis, one
// shorter than the vertex vector.
func (l *Lattice) Centers(axis int) []float64 {
	if l.N[axis] < 2 {
		return []float64{l.Min[axis]}
	}
	out := make([]float64, l.N[axis]-1)
	for i := range out {
		out[i] = l.Min[axis] + (float64(i)+0.5)*l.Spacing[axis]
	}
	return out
}

// Extent returns the axis length max-min.
func (l *Lattice) Extent(axis int) float64 {
	return l.Max[axis] - l.Min[axis]
}

// SynthesizeGeo builds a geographic grid spanning the lattice, with an
// optional field map.
func (l *Lattice) SynthesizeGeo(fields []*Field, attrs map[string]string) (*GeoGrid, error) {
	lon, lat, depth, shape := Meshgrid(l.Vertices(0), l.Vertices(1), l.Vertices(2))
	return NewGeoGrid(Deg(lon), Deg(lat), Km(depth), shape, fields, attrs)
}

// SynthesizeLocal builds a local-Cartesian grid spanning the lattice.
func (l *Lattice) SynthesizeLocal(fields []*Field, attrs map[string]string) (*LocalGrid, error) {
	x, y, z, shape := Meshgrid(l.Vertices(0), l.Vertices(1), l.Vertices(2))
	return NewLocalGrid(Km(x), Km(y), Km(z), shape, fields, attrs)
}

// surfaceInterpolator builds the horizontal depth interpolant of a
// surface grid.
func surfaceInterpolator(surf *GeoGrid) (*interp.Regular, error) {
	s := surf.Shape()
	if s.Class() != SurfaceGrid {
		return nil, &UnsupportedDatasetShapeError{Op: "surface query", Class: s.Class()}
	}
	if s[2] != 1 {
		return nil, &UnsupportedDatasetShapeError{Op: "surface query along a non-depth singleton axis", Class: SurfaceGrid}
	}
	lonAxis := AxisVector(surf.Lon.Data, s, 0)
	latAxis := AxisVector(surf.Lat.Data, s, 1)
	return interp.NaNFill([][]float64{lonAxis, latAxis}, surf.Depth.Data)
}

// AboveSurface reports, for every node of g, whether it lies above the
// surface (shallower, since depth is negative downwards). Nodes outside
// the surface's horizontal domain are reported false.
func AboveSurface(g *GeoGrid, surf *GeoGrid) ([]bool, error) {
	return compareSurface(g, surf, true)
}

// BelowSurface is the complement of AboveSurface inside the surface
// domain.
func BelowSurface(g *GeoGrid, surf *GeoGrid) ([]bool, error) {
	return compareSurface(g, surf, false)
}

func compareSurface(g *GeoGrid, surf *GeoGrid, above bool) ([]bool, error) {
	itp, err := surfaceInterpolator(surf)
	if err != nil {
		return nil, err
	}
	size := g.Shape().Size()
	out := make([]bool, size)
	for i := 0; i < size; i++ {
		sd := itp.At(g.Lon.Data[i], g.Lat.Data[i])
		if math.IsNaN(sd) {
			continue
		}
		if above {
			out[i] = g.Depth.Data[i] > sd
		} else {
			out[i] = g.Depth.Data[i] < sd
		}
	}
	return out, nil
}
