package grid

import (
	"github.com/nci/geomodel/geodesy"
)

// Variant conversions are pointwise through the geodesy transforms.
// Fields are carried over by reference except when converting toward
// the Earth-centered frame, where 3-component fields (other than
// "colors") are rotated from east/north/up into ECEF components. The
// original named components are not individually recoverable after
// rotation, so callers wanting to keep them should also store each
// component as a scalar field.

// ToEcef converts a geographic grid to Earth-centered Cartesian
// kilometers for rendering, rotating vector fields into the target
// frame.
func (g *GeoGrid) ToEcef() (*EcefGrid, error) {
	size := g.shape.Size()
	x := make([]float64, size)
	y := make([]float64, size)
	z := make([]float64, size)
	for i := 0; i < size; i++ {
		x[i], y[i], z[i] = geodesy.LatLonToECEF(g.Lat.Data[i], g.Lon.Data[i], g.Depth.Data[i])
	}

	fields := make([]*Field, len(g.fields))
	for fi, f := range g.fields {
		if !f.IsVector() {
			fields[fi] = f
			continue
		}
		rot := &Field{Name: f.Name, Data: [][]float64{
			make([]float64, size), make([]float64, size), make([]float64, size)}}
		for i := 0; i < size; i++ {
			rot.Data[0][i], rot.Data[1][i], rot.Data[2][i] =
				geodesy.RotateENU(g.Lat.Data[i], g.Lon.Data[i], f.Data[0][i], f.Data[1][i], f.Data[2][i])
		}
		fields[fi] = rot
	}

	return NewEcefGrid(Km(x), Km(y), Km(z), g.shape, fields, CloneAttrs(g.attrs))
}

// ToUTM projects a geographic grid into the anchor's fixed zone and
// hemisphere. Depths become meters.
func (g *GeoGrid) ToUTM(p *geodesy.ProjectionPoint) (*UTMGrid, error) {
	if p == nil {
		p = geodesy.DefaultProjectionPoint()
	}
	size := g.shape.Size()
	east := make([]float64, size)
	north := make([]float64, size)
	depth := make([]float64, size)
	for i := 0; i < size; i++ {
		east[i], north[i] = geodesy.ToUTMZone(g.Lat.Data[i], g.Lon.Data[i], p.Zone, p.Northern)
		depth[i] = g.Depth.Data[i] * 1000.0
	}
	return NewUTMGrid(Meters(east), Meters(north), Meters(depth),
		UniformZone(size, p.Zone), UniformHemisphere(size, p.Northern),
		g.shape, g.fields, CloneAttrs(g.attrs))
}

// ToGeo inverts the projection using the per-point zone and hemisphere
// stored alongside the coordinates.
func (g *UTMGrid) ToGeo() (*GeoGrid, error) {
	size := g.shape.Size()
	lon := make([]float64, size)
	lat := make([]float64, size)
	depth := make([]float64, size)
	for i := 0; i < size; i++ {
		lat[i], lon[i] = geodesy.ToLatLon(g.East.Data[i], g.North.Data[i], g.Zone[i], g.Northern[i])
		depth[i] = g.Depth.Data[i] / 1000.0
	}
	return NewGeoGrid(Deg(lon), Deg(lat), Km(depth), g.shape, g.fields, CloneAttrs(g.attrs))
}

// ToLocal shifts a projected grid into kilometers relative to the
// anchor's UTM coordinates. No ellipsoidal computation is involved.
func (g *UTMGrid) ToLocal(p *geodesy.ProjectionPoint) (*LocalGrid, error) {
	if p == nil {
		p = geodesy.DefaultProjectionPoint()
	}
	size := g.shape.Size()
	x := make([]float64, size)
	y := make([]float64, size)
	z := make([]float64, size)
	for i := 0; i < size; i++ {
		x[i] = (g.East.Data[i] - p.East) / 1000.0
		y[i] = (g.North.Data[i] - p.North) / 1000.0
		z[i] = g.Depth.Data[i] / 1000.0
	}
	return NewLocalGrid(Km(x), Km(y), Km(z), g.shape, g.fields, CloneAttrs(g.attrs))
}

// ToUTM places a local-Cartesian grid back onto the anchor's UTM plane.
func (g *LocalGrid) ToUTM(p *geodesy.ProjectionPoint) (*UTMGrid, error) {
	if p == nil {
		p = geodesy.DefaultProjectionPoint()
	}
	size := g.shape.Size()
	east := make([]float64, size)
	north := make([]float64, size)
	depth := make([]float64, size)
	for i := 0; i < size; i++ {
		east[i] = g.X.Data[i]*1000.0 + p.East
		north[i] = g.Y.Data[i]*1000.0 + p.North
		depth[i] = g.Z.Data[i] * 1000.0
	}
	return NewUTMGrid(Meters(east), Meters(north), Meters(depth),
		UniformZone(size, p.Zone), UniformHemisphere(size, p.Northern),
		g.shape, g.fields, CloneAttrs(g.attrs))
}

// ToLocal converts a geographic grid to local-Cartesian kilometers via
// the anchor's UTM plane.
func (g *GeoGrid) ToLocal(p *geodesy.ProjectionPoint) (*LocalGrid, error) {
	utm, err := g.ToUTM(p)
	if err != nil {
		return nil, err
	}
	return utm.ToLocal(p)
}

// ToGeo converts a local-Cartesian grid back to geographic coordinates
// via the anchor's UTM plane.
func (g *LocalGrid) ToGeo(p *geodesy.ProjectionPoint) (*GeoGrid, error) {
	utm, err := g.ToUTM(p)
	if err != nil {
		return nil, err
	}
	return utm.ToGeo()
}
