package section

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/nci/geomodel/geodesy"
	"github.com/nci/geomodel/grid"
)

// planeDepthDeltaM is the vertical offset of the third plane-defining
// point for diagonal sections, in meters.
const planeDepthDeltaM = 100000.0

// pointSection selects the members of a scattered point set inside a
// half-width band around the target plane. Fields are carried through
// at the retained indices; vector fields are not re-rotated.
func pointSection(g *grid.GeoGrid, p Params) (*grid.GeoGrid, error) {
	switch {
	case p.Start != nil:
		return pointDiagonal(g, p)
	case p.Depth != nil:
		return pointDepthBand(g, p)
	default:
		return pointFixedBand(g, p)
	}
}

func retain(g *grid.GeoGrid, keep []int, lon, lat, depth []float64) (*grid.GeoGrid, error) {
	pick := func(src []float64) []float64 {
		out := make([]float64, len(keep))
		for n, i := range keep {
			out[n] = src[i]
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
	if lon == nil {
		lon, lat, depth = pick(g.Lon.Data), pick(g.Lat.Data), pick(g.Depth.Data)
	}
	return grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth),
		grid.Shape{len(keep)}, fields, grid.CloneAttrs(g.Attrs()))
}

// pointDepthBand keeps points whose raw depth difference is inside the
// band.
func pointDepthBand(g *grid.GeoGrid, p Params) (*grid.GeoGrid, error) {
	half := p.halfWidthKm()
	var keep []int
	for i := range g.Depth.Data {
		if math.Abs(g.Depth.Data[i]-*p.Depth) < half {
			keep = append(keep, i)
		}
	}
	return retain(g, keep, nil, nil, nil)
}

// pointFixedBand keeps points inside a band around a fixed latitude or
// longitude. The band test runs in projected UTM meters so the width is
// a true distance.
func pointFixedBand(g *grid.GeoGrid, p Params) (*grid.GeoGrid, error) {
	anchor := anchorNear(g, p)
	halfM := p.halfWidthKm() * 1000.0

	var keep []int
	for i := range g.Lon.Data {
		east, north := geodesy.ToUTMZone(g.Lat.Data[i], g.Lon.Data[i], anchor.Zone, anchor.Northern)
		var d float64
		if p.Lat != nil {
			_, targetNorth := geodesy.ToUTMZone(*p.Lat, g.Lon.Data[i], anchor.Zone, anchor.Northern)
			d = north - targetNorth
		} else {
			targetEast, _ := geodesy.ToUTMZone(g.Lat.Data[i], *p.Lon, anchor.Zone, anchor.Northern)
			d = east - targetEast
		}
		if math.Abs(d) < halfM {
			keep = append(keep, i)
		}
	}
	return retain(g, keep, nil, nil, nil)
}

// pointDiagonal selects points near the vertical plane through the
// start/end profile and projects the retained points onto it. The
// plane is defined by three points in UTM-meter/depth-meter space: the
// start point, the end point, and the start point displaced in depth.
func pointDiagonal(g *grid.GeoGrid, p Params) (*grid.GeoGrid, error) {
	anchor := anchorNear(g, p)
	halfM := p.halfWidthKm() * 1000.0

	startE, startN := geodesy.ToUTMZone(p.Start.Lat, p.Start.Lon, anchor.Zone, anchor.Northern)
	endE, endN := geodesy.ToUTMZone(p.End.Lat, p.End.Lon, anchor.Zone, anchor.Northern)

	a := r3.Vector{X: startE, Y: startN, Z: 0}
	b := r3.Vector{X: endE, Y: endN, Z: 0}
	c := r3.Vector{X: startE, Y: startN, Z: -planeDepthDeltaM}

	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()

	var keep []int
	var lon, lat, depth []float64
	for i := range g.Lon.Data {
		east, north := geodesy.ToUTMZone(g.Lat.Data[i], g.Lon.Data[i], anchor.Zone, anchor.Northern)
		pt := r3.Vector{X: east, Y: north, Z: g.Depth.Data[i] * 1000.0}
		d := pt.Sub(a).Dot(normal)
		if math.Abs(d) >= halfM {
			continue
		}
		proj := pt.Sub(normal.Mul(d))
		pLat, pLon := geodesy.ToLatLon(proj.X, proj.Y, anchor.Zone, anchor.Northern)
		keep = append(keep, i)
		lon = append(lon, pLon)
		lat = append(lat, pLat)
		depth = append(depth, proj.Z/1000.0)
	}
	return retain(g, keep, lon, lat, depth)
}
