package geodesy

// ProjectionPoint anchors all geographic/Cartesian conversions of one
// analysis: a geographic location bound to its UTM projection. It is
// constructed once, passed by reference, and never mutated.
type ProjectionPoint struct {
	Lat, Lon    float64
	East, North float64
	Zone        int
	Northern    bool
}

// NewProjectionPoint builds an anchor at the given geographic location,
// computing its UTM coordinates in the location's own zone.
func NewProjectionPoint(lat, lon float64) *ProjectionPoint {
	east, north, zone, northern := ToUTM(lat, lon)
	return &ProjectionPoint{Lat: lat, Lon: lon, East: east, North: north, Zone: zone, Northern: northern}
}

// DefaultProjectionPoint is the anchor used when the caller does not
// supply one: the equator/prime-meridian origin in zone 31N.
func DefaultProjectionPoint() *ProjectionPoint {
	return NewProjectionPoint(0, 0)
}
