package section

import (
	geo "github.com/paulmach/go.geo"

	"github.com/nci/geomodel/grid"
	"github.com/nci/geomodel/interp"
)

// surfaceSection interpolates a surface's depth and fields onto a
// profile line. Horizontal slicing of a surface would require true
// surface-surface intersection and is not implemented; it fails loudly.
func surfaceSection(g *grid.GeoGrid, p Params) (*grid.GeoGrid, error) {
	if p.Depth != nil {
		return nil, &grid.UnsupportedDatasetShapeError{Op: "horizontal cross-section", Class: grid.SurfaceGrid}
	}

	s := g.Shape()
	if s[2] != 1 {
		return nil, &grid.UnsupportedDatasetShapeError{Op: "sectioning along a non-depth singleton axis", Class: grid.SurfaceGrid}
	}
	lonAxis := grid.AxisVector(g.Lon.Data, s, 0)
	latAxis := grid.AxisVector(g.Lat.Data, s, 1)

	var pathLon, pathLat []float64
	var dist []float64
	switch {
	case p.Start != nil:
		n := p.nLon()
		pathLon = interp.Linspace(p.Start.Lon, p.End.Lon, n)
		pathLat = interp.Linspace(p.Start.Lat, p.End.Lat, n)
		start := geo.NewPoint(p.Start.Lon, p.Start.Lat)
		dist = make([]float64, n)
		for i := 0; i < n; i++ {
			dist[i] = start.GeoDistanceFrom(geo.NewPoint(pathLon[i], pathLat[i]), true) / 1000.0
		}
	case p.Lat != nil:
		ax, err := interp.NewAxis(latAxis)
		if err != nil {
			return nil, err
		}
		if !ax.Contains(*p.Lat) {
			return nil, &grid.OutOfBoundsError{Param: "lat", Value: *p.Lat, Min: ax.Min(), Max: ax.Max()}
		}
		n := p.nLon()
		pathLon = interp.Linspace(minOf(lonAxis), maxOf(lonAxis), n)
		pathLat = make([]float64, n)
		for i := range pathLat {
			pathLat[i] = *p.Lat
		}
	default:
		ax, err := interp.NewAxis(lonAxis)
		if err != nil {
			return nil, err
		}
		if !ax.Contains(*p.Lon) {
			return nil, &grid.OutOfBoundsError{Param: "lon", Value: *p.Lon, Min: ax.Min(), Max: ax.Max()}
		}
		n := p.nLat()
		pathLat = interp.Linspace(minOf(latAxis), maxOf(latAxis), n)
		pathLon = make([]float64, n)
		for i := range pathLon {
			pathLon[i] = *p.Lon
		}
	}

	n := len(pathLon)
	shape := grid.Shape{n, 1, 1}
	srcAxes := [][]float64{lonAxis, latAxis}

	// Points outside the surface domain become NaN rather than erroring.
	depthItp, err := interp.NaNFill(srcAxes, g.Depth.Data)
	if err != nil {
		return nil, err
	}
	depth := make([]float64, n)
	for i := 0; i < n; i++ {
		depth[i] = depthItp.At(pathLon[i], pathLat[i])
	}

	fields := make([]*grid.Field, 0, len(g.Fields())+1)
	for _, f := range g.Fields() {
		nf := &grid.Field{Name: f.Name, Data: make([][]float64, len(f.Data))}
		for c, comp := range f.Data {
			itp, err := interp.NaNFill(srcAxes, comp)
			if err != nil {
				return nil, err
			}
			vals := make([]float64, n)
			for i := 0; i < n; i++ {
				vals[i] = itp.At(pathLon[i], pathLat[i])
			}
			nf.Data[c] = vals
		}
		fields = append(fields, nf)
	}
	if dist != nil && g.Field(ProfileDistanceField) == nil {
		fields = append(fields, grid.Scalar(ProfileDistanceField, dist))
	}

	return grid.NewGeoGrid(grid.Deg(pathLon), grid.Deg(pathLat), grid.Km(depth), shape, fields, grid.CloneAttrs(g.Attrs()))
}
