package vote

import (
	"fmt"

	"github.com/nci/geomodel/grid"
	"github.com/nci/geomodel/interp"
	"github.com/nci/geomodel/resample"
)

const (
	// VotesField carries the integer-valued per-cell vote count.
	VotesField = "votes"
	// CoverageField carries how many datasets cover each cell.
	CoverageField = "coverage"
	// ScoreField carries the coverage-normalized continuous score of
	// the statistical relative mode.
	ScoreField = "score"

	// DefaultResolution is the per-axis lattice resolution when the
	// caller does not configure one.
	DefaultResolution = 50
)

// ExtentMode selects how the shared lattice extent is derived from the
// input datasets.
type ExtentMode int

const (
	// Overlapping intersects all dataset extents.
	Overlapping ExtentMode = iota
	// Maximum unions all dataset extents.
	Maximum
	// Explicit uses the caller-supplied box.
	Explicit
)

// Options configures the shared voting lattice.
type Options struct {
	Mode ExtentMode
	// Box is (lonMin, lonMax, latMin, latMax, depthMin, depthMax) in
	// Explicit mode.
	Box [6]float64
	// N is the per-axis lattice resolution; zero entries default to
	// DefaultResolution.
	N [3]int
}

func (o Options) resolution() [3]int {
	n := o.N
	for ax := 0; ax < 3; ax++ {
		if n[ax] <= 0 {
			n[ax] = DefaultResolution
		}
	}
	return n
}

// commonExtent derives the shared per-axis bounds.
func commonExtent(datasets []*grid.GeoGrid, o Options) (lo, hi [3]float64, err error) {
	if o.Mode == Explicit {
		for ax := 0; ax < 3; ax++ {
			lo[ax], hi[ax] = o.Box[2*ax], o.Box[2*ax+1]
			if lo[ax] > hi[ax] {
				lo[ax], hi[ax] = hi[ax], lo[ax]
			}
		}
		return
	}
	lo, hi = grid.Extent(datasets[0])
	for _, g := range datasets[1:] {
		gLo, gHi := grid.Extent(g)
		for ax := 0; ax < 3; ax++ {
			if o.Mode == Overlapping {
				if gLo[ax] > lo[ax] {
					lo[ax] = gLo[ax]
				}
				if gHi[ax] < hi[ax] {
					hi[ax] = gHi[ax]
				}
			} else {
				if gLo[ax] < lo[ax] {
					lo[ax] = gLo[ax]
				}
				if gHi[ax] > hi[ax] {
					hi[ax] = gHi[ax]
				}
			}
		}
	}
	for ax := 0; ax < 3; ax++ {
		if lo[ax] > hi[ax] {
			err = fmt.Errorf("dataset extents do not overlap on axis %v", ax+1)
			return
		}
	}
	return
}

// alignDataset resamples one dataset onto the shared lattice.
func alignDataset(g *grid.GeoGrid, lo, hi [3]float64, n [3]int) (*grid.GeoGrid, error) {
	b := resample.Bounds{}.Axis(0, lo[0], hi[0]).Axis(1, lo[1], hi[1]).Axis(2, lo[2], hi[2])
	return resample.Subvolume(g, b, resample.Options{Interpolate: true, N: n})
}

// Count aligns N datasets onto one lattice and tallies, per cell, how
// many satisfy their respective criterion. Summation is cell-wise and
// commutative; the input order does not affect the result.
func Count(datasets []*grid.GeoGrid, criteria []*Criterion, o Options) (*grid.GeoGrid, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no datasets given")
	}
	if len(criteria) != len(datasets) {
		return nil, fmt.Errorf("%v datasets but %v criteria", len(datasets), len(criteria))
	}
	for i, c := range criteria {
		if err := c.Bind(datasets[i]); err != nil {
			return nil, err
		}
	}

	lo, hi, err := commonExtent(datasets, o)
	if err != nil {
		return nil, err
	}
	n := o.resolution()

	votes := make([]float64, n[0]*n[1]*n[2])
	for i, g := range datasets {
		aligned, err := alignDataset(g, lo, hi, n)
		if err != nil {
			return nil, err
		}
		vals := aligned.Field(criteria[i].Field).Data[0]
		for idx, v := range vals {
			ok, err := criteria[i].Test(v)
			if err != nil {
				return nil, err
			}
			if ok {
				votes[idx]++
			}
		}
	}

	return voteGrid(lo, hi, n, []*grid.Field{grid.Scalar(VotesField, votes)})
}

// voteGrid wraps aggregate arrays onto the shared lattice.
func voteGrid(lo, hi [3]float64, n [3]int, fields []*grid.Field) (*grid.GeoGrid, error) {
	lon, lat, depth, shape := grid.Meshgrid(
		interp.Linspace(lo[0], hi[0], n[0]),
		interp.Linspace(lo[1], hi[1], n[1]),
		interp.Linspace(lo[2], hi[2], n[2]))
	return grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth), shape, fields, nil)
}
