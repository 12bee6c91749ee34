package vote

import (
	"fmt"
	"math"

	"github.com/nci/geomodel/grid"
	"github.com/nci/geomodel/interp"
)

// outlierSigma bounds the initial-pass deviation beyond which cells are
// excluded from the second statistics pass.
const outlierSigma = 5.0

// relEps is the relative tolerance of the threshold comparison.
// Resampled values carry round-off on the order of a few ULPs, which a
// near-zero sigma threshold must not count as signal.
const relEps = 1e-12

// StatOptions configures the statistical voting variant.
type StatOptions struct {
	Options
	// SigmaFactor is the caller-supplied multiple of the per-dataset
	// standard deviation used as the cell threshold.
	SigmaFactor float64
	// MeanCenter subtracts each dataset's mean before thresholding.
	MeanCenter bool
	// Relative additionally normalizes the vote by the number of
	// datasets covering each cell, producing a continuous score.
	Relative bool
}

// StatResult separates the two result kinds of the statistical variant:
// integer-valued vote counts (with per-cell coverage) and, in relative
// mode, a continuous coverage-normalized score. The two are never mixed
// into one field.
type StatResult struct {
	Votes *grid.GeoGrid
	Score *grid.GeoGrid
}

// meanStd computes mean and standard deviation over the masked values.
func meanStd(vals []float64, mask []bool) (mean, std float64, n int) {
	for i, v := range vals {
		if !mask[i] || math.IsNaN(v) {
			continue
		}
		mean += v
		n++
	}
	if n == 0 {
		return 0, 0, 0
	}
	mean /= float64(n)
	for i, v := range vals {
		if !mask[i] || math.IsNaN(v) {
			continue
		}
		std += (v - mean) * (v - mean)
	}
	std = math.Sqrt(std / float64(n))
	return
}

// Statistical aggregates datasets by per-dataset standard-deviation
// thresholds instead of explicit criteria. Cells outside a dataset's
// original bounding box count as "no coverage" for that dataset; cells
// beyond outlierSigma of an initial pass are excluded from the
// statistics but still thresholded.
func Statistical(datasets []*grid.GeoGrid, fields []string, o StatOptions) (*StatResult, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no datasets given")
	}
	if len(fields) != len(datasets) {
		return nil, fmt.Errorf("%v datasets but %v fields", len(datasets), len(fields))
	}
	for i, name := range fields {
		f := datasets[i].Field(name)
		if f == nil {
			return nil, &grid.InvalidCriterionError{Expr: name, Field: name}
		}
		if len(f.Data) != 1 {
			return nil, fmt.Errorf("field %q is a vector field, expecting a scalar", name)
		}
	}

	lo, hi, err := commonExtent(datasets, o.Options)
	if err != nil {
		return nil, err
	}
	n := o.resolution()
	size := n[0] * n[1] * n[2]

	lonAxis := interp.Linspace(lo[0], hi[0], n[0])
	latAxis := interp.Linspace(lo[1], hi[1], n[1])
	depthAxis := interp.Linspace(lo[2], hi[2], n[2])
	shape := grid.Shape{n[0], n[1], n[2]}

	votes := make([]float64, size)
	coverage := make([]float64, size)

	for di, g := range datasets {
		aligned, err := alignDataset(g, lo, hi, n)
		if err != nil {
			return nil, err
		}
		vals := aligned.Field(fields[di]).Data[0]

		// Coverage is judged against the dataset's pre-resample bounds,
		// not the resampled (flat-extrapolated) values.
		origLo, origHi := grid.Extent(g)
		covered := make([]bool, size)
		for k := 0; k < n[2]; k++ {
			for j := 0; j < n[1]; j++ {
				for i := 0; i < n[0]; i++ {
					idx := shape.Idx(i, j, k)
					covered[idx] = lonAxis[i] >= origLo[0] && lonAxis[i] <= origHi[0] &&
						latAxis[j] >= origLo[1] && latAxis[j] <= origHi[1] &&
						depthAxis[k] >= origLo[2] && depthAxis[k] <= origHi[2]
				}
			}
		}

		mean0, std0, n0 := meanStd(vals, covered)
		if n0 == 0 {
			continue
		}
		valid := make([]bool, size)
		for i, v := range vals {
			valid[i] = covered[i] && !math.IsNaN(v) && math.Abs(v-mean0) <= outlierSigma*std0
		}
		mean, std, _ := meanStd(vals, valid)

		center := 0.0
		if o.MeanCenter {
			center = mean
		}
		threshold := o.SigmaFactor * std
		for i, v := range vals {
			if !covered[i] || math.IsNaN(v) {
				continue
			}
			coverage[i]++
			eps := relEps * math.Max(math.Abs(v), math.Abs(center))
			if v-center > threshold+eps {
				votes[i]++
			}
		}
	}

	res := &StatResult{}
	res.Votes, err = voteGrid(lo, hi, n, []*grid.Field{
		grid.Scalar(VotesField, votes),
		grid.Scalar(CoverageField, coverage),
	})
	if err != nil {
		return nil, err
	}

	if o.Relative {
		score := make([]float64, size)
		for i := range score {
			// Cells with zero coverage stay zero rather than dividing
			// by zero.
			if coverage[i] > 0 {
				score[i] = votes[i] / coverage[i]
			}
		}
		res.Score, err = voteGrid(lo, hi, n, []*grid.Field{grid.Scalar(ScoreField, score)})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
