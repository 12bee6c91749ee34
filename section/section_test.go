package section

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/nci/geomodel/geodesy"
	"github.com/nci/geomodel/grid"
	"github.com/nci/geomodel/interp"
)

func testVolume(t *testing.T, nLon, nLat, nDepth int) *grid.GeoGrid {
	lon, lat, depth, shape := grid.Meshgrid(
		interp.Linspace(10, 20, nLon),
		interp.Linspace(30, 40, nLat),
		interp.Linspace(-300, 0, nDepth))

	data := make([]float64, shape.Size())
	for i := range data {
		data[i] = depth[i] * 2
	}
	g, err := grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth), shape,
		[]*grid.Field{grid.Scalar("Depthdata", data)}, nil)
	if err != nil {
		t.Fatalf("volume construction failed: %v", err)
	}
	return g
}

func floatPtr(v float64) *float64 { return &v }

func TestHorizontalSlice(t *testing.T) {
	g := testVolume(t, 11, 11, 7) // depth nodes every 50 km

	s, err := CrossSection(g, Params{Depth: floatPtr(-100)})
	if err != nil {
		t.Fatalf("section failed: %v", err)
	}
	if !s.Shape().Equal(grid.Shape{11, 11, 1}) {
		t.Fatalf("shape: expecting [11 11 1], actual %v", []int(s.Shape()))
	}
	f := s.Field("Depthdata")
	for i, v := range f.Data[0] {
		if v != -200 {
			t.Fatalf("node %v: expecting -200, actual %v", i, v)
		}
	}
	for i, d := range s.Depth.Data {
		if d != -100 {
			t.Fatalf("node %v: expecting depth -100, actual %v", i, d)
		}
	}
}

func TestHorizontalSliceInterpolated(t *testing.T) {
	g := testVolume(t, 5, 5, 7)

	// The field is linear in depth so interpolation at an off-node depth
	// is exact.
	s, err := CrossSection(g, Params{Depth: floatPtr(-120), Interpolate: true, NLon: 6, NLat: 4})
	if err != nil {
		t.Fatalf("section failed: %v", err)
	}
	if !s.Shape().Equal(grid.Shape{6, 4, 1}) {
		t.Fatalf("shape: expecting [6 4 1], actual %v", []int(s.Shape()))
	}
	f := s.Field("Depthdata")
	for i, v := range f.Data[0] {
		if math.Abs(v-(-240)) > 1e-9 {
			t.Fatalf("node %v: expecting -240, actual %v", i, v)
		}
	}
}

func TestIndexSliceIdentity(t *testing.T) {
	g := testVolume(t, 5, 7, 4)
	s := g.Shape()

	// Fixed latitude without interpolation extracts one index plane
	// bit for bit.
	sec, err := CrossSection(g, Params{Lat: floatPtr(35)})
	if err != nil {
		t.Fatalf("section failed: %v", err)
	}
	if !sec.Shape().Equal(grid.Shape{5, 1, 4}) {
		t.Fatalf("shape: expecting [5 1 4], actual %v", []int(sec.Shape()))
	}
	latAxis := grid.AxisVector(g.Lat.Data, s, 1)
	j := 3 // 35 is the fourth node of Linspace(30, 40, 7)
	if latAxis[j] != 35 {
		t.Fatalf("test setup wrong: node %v is %v", j, latAxis[j])
	}
	src := g.Field("Depthdata").Data[0]
	got := sec.Field("Depthdata").Data[0]
	ns := sec.Shape()
	for k := 0; k < s[2]; k++ {
		for i := 0; i < s[0]; i++ {
			if got[ns.Idx(i, 0, k)] != src[s.Idx(i, j, k)] {
				t.Fatalf("slice value differs at (%v, %v)", i, k)
			}
		}
	}
}

func TestReversedDepthAxis(t *testing.T) {
	// Same volume, depths stored shallowest first.
	lon, lat, depth, shape := grid.Meshgrid(
		interp.Linspace(10, 20, 5),
		interp.Linspace(30, 40, 5),
		interp.Linspace(0, -300, 7))
	data := make([]float64, shape.Size())
	for i := range data {
		data[i] = depth[i] * 2
	}
	g, err := grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth), shape,
		[]*grid.Field{grid.Scalar("Depthdata", data)}, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	sec, err := CrossSection(g, Params{Depth: floatPtr(-100)})
	if err != nil {
		t.Fatalf("section failed: %v", err)
	}
	for i, v := range sec.Field("Depthdata").Data[0] {
		if v != -200 {
			t.Fatalf("node %v: expecting -200, actual %v", i, v)
		}
	}
}

func TestDiagonalVolume(t *testing.T) {
	g := testVolume(t, 11, 11, 7)

	sec, err := CrossSection(g, Params{
		Start: &LonLat{Lon: 12, Lat: 32},
		End:   &LonLat{Lon: 18, Lat: 38},
		NLon:  20, NDepth: 10,
	})
	if err != nil {
		t.Fatalf("section failed: %v", err)
	}
	if !sec.Shape().Equal(grid.Shape{20, 1, 10}) {
		t.Fatalf("shape: expecting [20 1 10], actual %v", []int(sec.Shape()))
	}

	dist := sec.Field(ProfileDistanceField)
	if dist == nil {
		t.Fatalf("profile distance field missing")
	}
	ns := sec.Shape()
	if dist.Data[0][ns.Idx(0, 0, 0)] != 0 {
		t.Errorf("profile distance at start: expecting 0, actual %v", dist.Data[0][0])
	}
	prev := -1.0
	for i := 0; i < 20; i++ {
		d := dist.Data[0][ns.Idx(i, 0, 0)]
		if d <= prev {
			t.Fatalf("profile distance not increasing at %v: %v after %v", i, d, prev)
		}
		prev = d
	}
	// Endpoints are about 6 degrees apart diagonally, several hundred km.
	if prev < 500 || prev > 1200 {
		t.Errorf("total profile length implausible: %v km", prev)
	}

	// The field is linear in depth; interpolation along the path keeps
	// that relation exactly.
	f := sec.Field("Depthdata")
	for idx, v := range f.Data[0] {
		if math.Abs(v-sec.Depth.Data[idx]*2) > 1e-9 {
			t.Fatalf("node %v: expecting %v, actual %v", idx, sec.Depth.Data[idx]*2, v)
		}
	}
}

func TestSectionErrors(t *testing.T) {
	g := testVolume(t, 5, 5, 5)

	if _, err := CrossSection(g, Params{Depth: floatPtr(-500)}); err == nil {
		t.Errorf("out-of-range depth accepted")
	} else if _, ok := err.(*grid.OutOfBoundsError); !ok {
		t.Errorf("expecting OutOfBoundsError, actual %T", err)
	}

	if _, err := CrossSection(g, Params{Start: &LonLat{Lon: 12, Lat: 32}}); err == nil {
		t.Errorf("start without end accepted")
	} else if _, ok := err.(*grid.MissingPairedParameterError); !ok {
		t.Errorf("expecting MissingPairedParameterError, actual %T", err)
	}

	if _, err := CrossSection(g, Params{End: &LonLat{Lon: 12, Lat: 32}}); err == nil {
		t.Errorf("end without start accepted")
	}

	if _, err := CrossSection(g, Params{}); err == nil {
		t.Errorf("empty geometry accepted")
	}
}

func TestSurfaceSections(t *testing.T) {
	// A surface with depth -50 km everywhere.
	lon, lat, depth, shape := grid.Meshgrid(
		interp.Linspace(10, 20, 6),
		interp.Linspace(30, 40, 6),
		[]float64{0})
	for i := range depth {
		depth[i] = -50
	}
	surf, err := grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth), shape, nil, nil)
	if err != nil {
		t.Fatalf("surface construction failed: %v", err)
	}

	if _, err := CrossSection(surf, Params{Depth: floatPtr(-50)}); err == nil {
		t.Errorf("horizontal slice of a surface accepted")
	} else if _, ok := err.(*grid.UnsupportedDatasetShapeError); !ok {
		t.Errorf("expecting UnsupportedDatasetShapeError, actual %T", err)
	}

	sec, err := CrossSection(surf, Params{Lat: floatPtr(35), NLon: 8})
	if err != nil {
		t.Fatalf("surface profile failed: %v", err)
	}
	if !sec.Shape().Equal(grid.Shape{8, 1, 1}) {
		t.Fatalf("shape: expecting [8 1 1], actual %v", []int(sec.Shape()))
	}
	for i, d := range sec.Depth.Data {
		if math.Abs(d-(-50)) > 1e-9 {
			t.Fatalf("node %v: expecting depth -50, actual %v", i, d)
		}
	}

	if _, err := CrossSection(surf, Params{Lat: floatPtr(60)}); err == nil {
		t.Errorf("out-of-range surface profile accepted")
	}

	// A surface whose singleton axis is lon rather than depth cannot be
	// profiled either, and the failure carries the shape-class error.
	wlon, wlat, wdepth, wshape := grid.Meshgrid(
		[]float64{15},
		interp.Linspace(30, 40, 5),
		interp.Linspace(-100, 0, 4))
	wall, err := grid.NewGeoGrid(grid.Deg(wlon), grid.Deg(wlat), grid.Km(wdepth), wshape, nil, nil)
	if err != nil {
		t.Fatalf("wall construction failed: %v", err)
	}
	if _, err := CrossSection(wall, Params{Lat: floatPtr(35)}); err == nil {
		t.Errorf("profile of a lon-singleton surface accepted")
	} else if _, ok := err.(*grid.UnsupportedDatasetShapeError); !ok {
		t.Errorf("expecting UnsupportedDatasetShapeError, actual %T", err)
	}
}

func TestPointDepthBand(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	n := 2000
	lon := make([]float64, n)
	lat := make([]float64, n)
	depth := make([]float64, n)
	for i := 0; i < n; i++ {
		lon[i] = 10 + 10*rnd.Float64()
		lat[i] = 30 + 10*rnd.Float64()
		depth[i] = -300 * rnd.Float64()
	}
	g, err := grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth), grid.Shape{n}, nil, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	sec, err := CrossSection(g, Params{Depth: floatPtr(-100), SectionWidth: 20})
	if err != nil {
		t.Fatalf("section failed: %v", err)
	}
	want := 0
	for _, d := range depth {
		if math.Abs(d+100) < 10 {
			want++
		}
	}
	if got := sec.Shape().Size(); got != want {
		t.Errorf("expecting %v retained points, actual %v", want, got)
	}
	for _, d := range sec.Depth.Data {
		if math.Abs(d+100) >= 10 {
			t.Fatalf("point outside the band retained: %v", d)
		}
	}
}

func TestPointDiagonalBand(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	n := 10000
	lon := make([]float64, n)
	lat := make([]float64, n)
	depth := make([]float64, n)
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		lon[i] = 14 + 4*rnd.Float64()
		lat[i] = 34 + 4*rnd.Float64()
		depth[i] = -300 * rnd.Float64()
		data[i] = float64(i)
	}
	g, err := grid.NewGeoGrid(grid.Deg(lon), grid.Deg(lat), grid.Km(depth), grid.Shape{n},
		[]*grid.Field{grid.Scalar("id", data)}, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	anchor := geodesy.NewProjectionPoint(36, 16)
	start := LonLat{Lon: 15, Lat: 35}
	end := LonLat{Lon: 17, Lat: 37}
	sec, err := CrossSection(g, Params{
		Start: &start, End: &end,
		SectionWidth: 10,
		Anchor:       anchor,
	})
	if err != nil {
		t.Fatalf("section failed: %v", err)
	}

	// Rebuild the cutting plane and check the retained set against a
	// brute-force scan.
	startE, startN := geodesy.ToUTMZone(start.Lat, start.Lon, anchor.Zone, anchor.Northern)
	endE, endN := geodesy.ToUTMZone(end.Lat, end.Lon, anchor.Zone, anchor.Northern)
	a := r3.Vector{X: startE, Y: startN, Z: 0}
	b := r3.Vector{X: endE, Y: endN, Z: 0}
	c := r3.Vector{X: startE, Y: startN, Z: -planeDepthDeltaM}
	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()

	want := 0
	for i := 0; i < n; i++ {
		east, north := geodesy.ToUTMZone(lat[i], lon[i], anchor.Zone, anchor.Northern)
		pt := r3.Vector{X: east, Y: north, Z: depth[i] * 1000}
		if math.Abs(pt.Sub(a).Dot(normal)) < 5000 {
			want++
		}
	}
	got := sec.Shape().Size()
	if got != want {
		t.Fatalf("expecting %v retained points, actual %v", want, got)
	}
	if got == 0 {
		t.Fatalf("test setup retained no points")
	}

	// Retained points have been projected onto the plane.
	for i := 0; i < got; i++ {
		east, north := geodesy.ToUTMZone(sec.Lat.Data[i], sec.Lon.Data[i], anchor.Zone, anchor.Northern)
		pt := r3.Vector{X: east, Y: north, Z: sec.Depth.Data[i] * 1000}
		if d := math.Abs(pt.Sub(a).Dot(normal)); d > 1.0 {
			t.Fatalf("retained point %v is %v m off the plane", i, d)
		}
	}

	// Field values travel with their points.
	ids := sec.Field("id").Data[0]
	seen := make(map[float64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("point %v retained twice", id)
		}
		seen[id] = true
	}
}
