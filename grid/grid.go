// Package grid implements the multi-representation gridded data model:
// four coordinate variants sharing one field-map contract, a derived
// point/surface/volume shape classifier, and the variant conversion
// entry points.
package grid

import (
	"log"
	"math"
)

// Kind identifies one of the four coordinate representations.
type Kind int

const (
	Geographic Kind = iota
	UTMProjected
	LocalCartesian
	EarthCartesian
)

func (k Kind) String() string {
	switch k {
	case Geographic:
		return "geographic"
	case UTMProjected:
		return "utm"
	case LocalCartesian:
		return "cartesian"
	case EarthCartesian:
		return "ecef"
	}
	return "unknown"
}

// Grid is the capability interface shared by the four variants:
// coordinate accessors, the ordered field map, shape and extent
// queries. Grids are never mutated after construction; every derived
// view is a new grid.
type Grid interface {
	Kind() Kind
	Shape() Shape
	Coords() (*UnitArray, *UnitArray, *UnitArray)
	Fields() []*Field
	Field(name string) *Field
	Attrs() map[string]string
}

type base struct {
	shape  Shape
	fields []*Field
	attrs  map[string]string
}

func (b *base) Shape() Shape     { return b.shape.Clone() }
func (b *base) Fields() []*Field { return b.fields }

func (b *base) Field(name string) *Field {
	for _, f := range b.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (b *base) Attrs() map[string]string { return b.attrs }

// GeoGrid holds geographic coordinates: longitude/latitude in degrees
// and depth in kilometers, negative downwards.
type GeoGrid struct {
	Lon, Lat, Depth *UnitArray
	base
}

// UTMGrid holds projected coordinates: easting/northing/depth in
// meters, with per-point zone number and hemisphere flag.
type UTMGrid struct {
	East, North, Depth *UnitArray
	Zone               []int
	Northern           []bool
	base
}

// LocalGrid holds local-Cartesian coordinates in kilometers relative to
// a projection anchor.
type LocalGrid struct {
	X, Y, Z *UnitArray
	base
}

// EcefGrid holds Earth-centered Cartesian coordinates in kilometers,
// used as the rendering frame.
type EcefGrid struct {
	X, Y, Z *UnitArray
	base
}

func (g *GeoGrid) Kind() Kind   { return Geographic }
func (g *UTMGrid) Kind() Kind   { return UTMProjected }
func (g *LocalGrid) Kind() Kind { return LocalCartesian }
func (g *EcefGrid) Kind() Kind  { return EarthCartesian }

func (g *GeoGrid) Coords() (*UnitArray, *UnitArray, *UnitArray) {
	return g.Lon, g.Lat, g.Depth
}

func (g *UTMGrid) Coords() (*UnitArray, *UnitArray, *UnitArray) {
	return g.East, g.North, g.Depth
}

func (g *LocalGrid) Coords() (*UnitArray, *UnitArray, *UnitArray) {
	return g.X, g.Y, g.Z
}

func (g *EcefGrid) Coords() (*UnitArray, *UnitArray, *UnitArray) {
	return g.X, g.Y, g.Z
}

// normalizeCoord assumes the canonical unit for bare arrays and
// converts tagged arrays into it.
func normalizeCoord(a *UnitArray, to Unit) (*UnitArray, error) {
	if a.Unit == NoUnit {
		return &UnitArray{Data: a.Data, Unit: to}, nil
	}
	if a.Unit == to {
		return a, nil
	}
	return a.ConvertTo(to)
}

func validateArrays(shape Shape, fields []*Field, coords ...struct {
	name string
	arr  *UnitArray
}) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	size := shape.Size()
	for _, c := range coords {
		if len(c.arr.Data) != size {
			return &ShapeMismatchError{Name: c.name, Got: len(c.arr.Data), Want: size}
		}
	}
	for _, f := range fields {
		if err := f.validate(size); err != nil {
			return err
		}
	}
	return nil
}

func coordTriple(a1 string, c1 *UnitArray, a2 string, c2 *UnitArray, a3 string, c3 *UnitArray) []struct {
	name string
	arr  *UnitArray
} {
	return []struct {
		name string
		arr  *UnitArray
	}{{a1, c1}, {a2, c2}, {a3, c3}}
}

// axisVariation measures how much a coordinate array changes along one
// axis of a 3-D grid.
func axisVariation(c []float64, s Shape, axis int) float64 {
	di, dj, dk := 0, 0, 0
	switch axis {
	case 0:
		di = s[0] - 1
	case 1:
		dj = s[1] - 1
	case 2:
		dk = s[2] - 1
	}
	return math.Abs(c[s.Idx(di, dj, dk)] - c[s.Idx(0, 0, 0)])
}

// checkAxisOrder emits a non-fatal warning if the coordinate arrays do
// not follow the convention that axis 1 varies primarily with the
// first coordinate, axis 2 with the second and axis 3 with depth. The
// data is not reordered.
func checkAxisOrder(kind string, c1, c2, c3 []float64, s Shape) {
	if len(s) != 3 {
		return
	}
	coords := [][]float64{c1, c2, c3}
	names := []string{"first", "second", "third"}
	for ax, c := range coords {
		if s[ax] == 1 {
			continue
		}
		own := axisVariation(c, s, ax)
		for other := 0; other < 3; other++ {
			if other == ax || s[other] == 1 {
				continue
			}
			if axisVariation(c, s, other) > own {
				log.Printf("%s grid: %s coordinate varies more along axis %v than along axis %v; expecting (lon/x, lat/y, depth) axis order", kind, names[ax], other+1, ax+1)
				return
			}
		}
	}
}

// NewGeoGrid constructs a geographic grid. Bare coordinate arrays are
// assumed degrees for lon/lat and kilometers for depth; tagged depth
// arrays are converted to kilometers.
func NewGeoGrid(lon, lat, depth *UnitArray, shape Shape, fields []*Field, attrs map[string]string) (*GeoGrid, error) {
	lonN, err := normalizeCoord(lon, Degree)
	if err != nil {
		return nil, err
	}
	latN, err := normalizeCoord(lat, Degree)
	if err != nil {
		return nil, err
	}
	depthN, err := normalizeCoord(depth, Kilometer)
	if err != nil {
		return nil, err
	}
	if err := validateArrays(shape, fields, coordTriple("lon", lonN, "lat", latN, "depth", depthN)...); err != nil {
		return nil, err
	}
	checkAxisOrder("geographic", lonN.Data, latN.Data, depthN.Data, shape)
	return &GeoGrid{Lon: lonN, Lat: latN, Depth: depthN,
		base: base{shape: shape.Clone(), fields: fields, attrs: attrs}}, nil
}

// NewUTMGrid constructs a projected grid. Coordinates are normalized to
// meters. Zone and hemisphere are stored per point; UniformZone and
// UniformHemisphere build them from a single value.
func NewUTMGrid(east, north, depth *UnitArray, zone []int, northern []bool, shape Shape, fields []*Field, attrs map[string]string) (*UTMGrid, error) {
	eastN, err := normalizeCoord(east, Meter)
	if err != nil {
		return nil, err
	}
	northN, err := normalizeCoord(north, Meter)
	if err != nil {
		return nil, err
	}
	depthN, err := normalizeCoord(depth, Meter)
	if err != nil {
		return nil, err
	}
	if err := validateArrays(shape, fields, coordTriple("east", eastN, "north", northN, "depth", depthN)...); err != nil {
		return nil, err
	}
	size := shape.Size()
	if len(zone) != size {
		return nil, &ShapeMismatchError{Name: "zone", Got: len(zone), Want: size}
	}
	if len(northern) != size {
		return nil, &ShapeMismatchError{Name: "northern", Got: len(northern), Want: size}
	}
	checkAxisOrder("utm", eastN.Data, northN.Data, depthN.Data, shape)
	return &UTMGrid{East: eastN, North: northN, Depth: depthN, Zone: zone, Northern: northern,
		base: base{shape: shape.Clone(), fields: fields, attrs: attrs}}, nil
}

// NewLocalGrid constructs a local-Cartesian grid in kilometers.
func NewLocalGrid(x, y, z *UnitArray, shape Shape, fields []*Field, attrs map[string]string) (*LocalGrid, error) {
	xN, err := normalizeCoord(x, Kilometer)
	if err != nil {
		return nil, err
	}
	yN, err := normalizeCoord(y, Kilometer)
	if err != nil {
		return nil, err
	}
	zN, err := normalizeCoord(z, Kilometer)
	if err != nil {
		return nil, err
	}
	if err := validateArrays(shape, fields, coordTriple("x", xN, "y", yN, "z", zN)...); err != nil {
		return nil, err
	}
	checkAxisOrder("cartesian", xN.Data, yN.Data, zN.Data, shape)
	return &LocalGrid{X: xN, Y: yN, Z: zN,
		base: base{shape: shape.Clone(), fields: fields, attrs: attrs}}, nil
}

// NewEcefGrid constructs an Earth-centered Cartesian grid in
// kilometers.
func NewEcefGrid(x, y, z *UnitArray, shape Shape, fields []*Field, attrs map[string]string) (*EcefGrid, error) {
	xN, err := normalizeCoord(x, Kilometer)
	if err != nil {
		return nil, err
	}
	yN, err := normalizeCoord(y, Kilometer)
	if err != nil {
		return nil, err
	}
	zN, err := normalizeCoord(z, Kilometer)
	if err != nil {
		return nil, err
	}
	if err := validateArrays(shape, fields, coordTriple("x", xN, "y", yN, "z", zN)...); err != nil {
		return nil, err
	}
	return &EcefGrid{X: xN, Y: yN, Z: zN,
		base: base{shape: shape.Clone(), fields: fields, attrs: attrs}}, nil
}

func UniformZone(size, zone int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = zone
	}
	return out
}

func UniformHemisphere(size int, northern bool) []bool {
	out := make([]bool, size)
	for i := range out {
		out[i] = northern
	}
	return out
}

// Extent returns the per-coordinate (min, max) ranges of a grid.
func Extent(g Grid) (min, max [3]float64) {
	c1, c2, c3 := g.Coords()
	min[0], max[0] = c1.MinMax()
	min[1], max[1] = c2.MinMax()
	min[2], max[2] = c3.MinMax()
	return
}

// AxisVector extracts the 1-D coordinate vector along one axis of a
// regular 3-D grid: the first coordinate along axis 1 at (i,0,0), the
// second along axis 2 at (0,j,0), depth along axis 3 at (0,0,k).
func AxisVector(c []float64, s Shape, axis int) []float64 {
	out := make([]float64, s[axis])
	for n := 0; n < s[axis]; n++ {
		switch axis {
		case 0:
			out[n] = c[s.Idx(n, 0, 0)]
		case 1:
			out[n] = c[s.Idx(0, n, 0)]
		case 2:
			out[n] = c[s.Idx(0, 0, n)]
		}
	}
	return out
}

// AxisVectors returns the three 1-D axis vectors of a regular 3-D grid.
func AxisVectors(g Grid) (a1, a2, a3 []float64) {
	c1, c2, c3 := g.Coords()
	s := g.Shape()
	return AxisVector(c1.Data, s, 0), AxisVector(c2.Data, s, 1), AxisVector(c3.Data, s, 2)
}

// CloneAttrs copies an attribute map for carrying provenance onto a
// derived grid.
func CloneAttrs(attrs map[string]string) map[string]string {
	if attrs == nil {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
