package section

import (
	geo "github.com/paulmach/go.geo"

	"github.com/nci/geomodel/grid"
	"github.com/nci/geomodel/interp"
)

func volumeSection(g *grid.GeoGrid, p Params) (*grid.GeoGrid, error) {
	lonAxis, latAxis, depthAxis := grid.AxisVectors(g)

	if p.Start != nil {
		return diagonalVolume(g, p, lonAxis, latAxis, depthAxis)
	}

	var (
		axisVals []float64
		axis     int
		param    string
		target   float64
	)
	switch {
	case p.Depth != nil:
		axisVals, axis, param, target = depthAxis, 2, "depth", *p.Depth
	case p.Lat != nil:
		axisVals, axis, param, target = latAxis, 1, "lat", *p.Lat
	default:
		axisVals, axis, param, target = lonAxis, 0, "lon", *p.Lon
	}

	ax, err := interp.NewAxis(axisVals)
	if err != nil {
		return nil, err
	}
	if !ax.Contains(target) {
		return nil, &grid.OutOfBoundsError{Param: param, Value: target, Min: ax.Min(), Max: ax.Max()}
	}

	if !p.Interpolate {
		return sliceVolume(g, axis, ax.Nearest(target))
	}

	var a1, a2, a3 []float64
	switch axis {
	case 2:
		a1 = interp.Linspace(minOf(lonAxis), maxOf(lonAxis), p.nLon())
		a2 = interp.Linspace(minOf(latAxis), maxOf(latAxis), p.nLat())
		a3 = []float64{target}
	case 1:
		a1 = interp.Linspace(minOf(lonAxis), maxOf(lonAxis), p.nLon())
		a2 = []float64{target}
		a3 = interp.Linspace(minOf(depthAxis), maxOf(depthAxis), p.nDepth())
	default:
		a1 = []float64{target}
		a2 = interp.Linspace(minOf(latAxis), maxOf(latAxis), p.nLat())
		a3 = interp.Linspace(minOf(depthAxis), maxOf(depthAxis), p.nDepth())
	}
	return interpolateVolume(g, [][]float64{lonAxis, latAxis, depthAxis}, a1, a2, a3, nil)
}

// diagonalVolume interpolates a straight lon/lat path against the full
// depth range. The path forces interpolation regardless of the
// no-interpolation flag.
func diagonalVolume(g *grid.GeoGrid, p Params, lonAxis, latAxis, depthAxis []float64) (*grid.GeoGrid, error) {
	nPath := p.nLon()
	nDepth := p.nDepth()

	pathLon := interp.Linspace(p.Start.Lon, p.End.Lon, nPath)
	pathLat := interp.Linspace(p.Start.Lat, p.End.Lat, nPath)
	depths := interp.Linspace(minOf(depthAxis), maxOf(depthAxis), nDepth)

	srcAxes := [][]float64{lonAxis, latAxis, depthAxis}
	shape := grid.Shape{nPath, 1, nDepth}
	size := shape.Size()

	lon := make([]float64, size)
	lat := make([]float64, size)
	depth := make([]float64, size)
	dist := make([]float64, size)

	start := geo.NewPoint(p.Start.Lon, p.Start.Lat)
	pathDist := make([]float64, nPath)
	for i := 0; i < nPath; i++ {
		pathDist[i] = start.GeoDistanceFrom(geo.NewPoint(pathLon[i], pathLat[i]), true) / 1000.0
	}

	for k := 0; k < nDepth; k++ {
		for i := 0; i < nPath; i++ {
			idx := shape.Idx(i, 0, k)
			lon[idx] = pathLon[i]
			lat[idx] = pathLat[i]
			depth[idx] = depths[k]
			dist[idx] = pathDist[i]
		}
	}

	fields, err := sampleFields(g, srcAxes, shape, func(idx int) [3]float64 {
		return [3]float64{lon[idx], lat[idx], depth[idx]}
	})
	if err != nil {
		return nil, err
	}
	if g.Field(ProfileDistanceField) == nil {
		fields = append(fields, grid.Scalar(ProfileDistanceField, dist))
	}

	return grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth), shape, fields, grid.CloneAttrs(g.Attrs()))
}

// sliceVolume extracts the index slice of one axis verbatim.
func sliceVolume(g *grid.GeoGrid, axis, idx int) (*grid.GeoGrid, error) {
	s := g.Shape()
	ns := s.Clone()
	ns[axis] = 1

	pick := func(src []float64) []float64 {
		out := make([]float64, ns.Size())
		for k := 0; k < ns[2]; k++ {
			for j := 0; j < ns[1]; j++ {
				for i := 0; i < ns[0]; i++ {
					si, sj, sk := i, j, k
					switch axis {
					case 0:
						si = idx
					case 1:
						sj = idx
					case 2:
						sk = idx
					}
					out[ns.Idx(i, j, k)] = src[s.Idx(si, sj, sk)]
				}
			}
		}
		return out
	}

	fields := make([]*grid.Field, 0, len(g.Fields()))
	for _, f := range g.Fields() {
		nf := &grid.Field{Name: f.Name, Data: make([][]float64, len(f.Data))}
		for c, comp := range f.Data {
			nf.Data[c] = pick(comp)
		}
		fields = append(fields, nf)
	}
	return grid.NewGeoGrid(grid.Deg(pick(g.Lon.Data)), grid.Deg(pick(g.Lat.Data)), grid.Km(pick(g.Depth.Data)),
		ns, fields, grid.CloneAttrs(g.Attrs()))
}

// interpolateVolume resamples the dataset onto the lattice spanned by
// the three axis vectors.
func interpolateVolume(g *grid.GeoGrid, srcAxes [][]float64, a1, a2, a3 []float64, extraFields []*grid.Field) (*grid.GeoGrid, error) {
	lon, lat, depth, shape := grid.Meshgrid(a1, a2, a3)
	fields, err := sampleFields(g, srcAxes, shape, func(idx int) [3]float64 {
		return [3]float64{lon[idx], lat[idx], depth[idx]}
	})
	if err != nil {
		return nil, err
	}
	fields = append(fields, extraFields...)
	return grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth), shape, fields, grid.CloneAttrs(g.Attrs()))
}

// sampleFields evaluates every field component at the query point of
// each output node, with flat extrapolation outside the source hull.
func sampleFields(g *grid.GeoGrid, srcAxes [][]float64, shape grid.Shape, at func(idx int) [3]float64) ([]*grid.Field, error) {
	size := shape.Size()
	fields := make([]*grid.Field, 0, len(g.Fields()))
	for _, f := range g.Fields() {
		nf := &grid.Field{Name: f.Name, Data: make([][]float64, len(f.Data))}
		for c, comp := range f.Data {
			itp, err := interp.NewRegular(srcAxes, comp, interp.Flat, 0)
			if err != nil {
				return nil, err
			}
			vals := make([]float64, size)
			for idx := 0; idx < size; idx++ {
				q := at(idx)
				vals[idx] = itp.At(q[0], q[1], q[2])
			}
			nf.Data[c] = vals
		}
		fields = append(fields, nf)
	}
	return fields, nil
}

func minOf(v []float64) float64 {
	min := v[0]
	for _, x := range v[1:] {
		if x < min {
			min = x
		}
	}
	return min
}

func maxOf(v []float64) float64 {
	max := v[0]
	for _, x := range v[1:] {
		if x > max {
			max = x
		}
	}
	return max
}
