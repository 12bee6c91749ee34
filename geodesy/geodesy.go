// Package geodesy provides the pointwise geodetic transforms used by
// the grid variant conversions: WGS84 geographic to Earth-centered
// Cartesian, geographic to/from UTM, and the local east/north/up frame
// rotation.
package geodesy

import (
	"math"
)

// WGS84 ellipsoid.
const (
	SemiMajorM   = 6378137.0
	Flattening   = 1.0 / 298.257223563
	SemiMajorKm  = SemiMajorM / 1000.0
	UTMScale     = 0.9996
	FalseEasting = 500000.0
	// Southern hemisphere northings are offset to stay positive.
	FalseNorthing = 10000000.0
)

var (
	ecc2  = Flattening * (2 - Flattening)
	eccP2 = ecc2 / (1 - ecc2)
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// LatLonToECEF converts geographic coordinates and an ellipsoidal
// altitude in kilometers (depth is negative altitude) to Earth-centered
// Cartesian XYZ in kilometers.
func LatLonToECEF(latDeg, lonDeg, altKm float64) (x, y, z float64) {
	lat := radians(latDeg)
	lon := radians(lonDeg)
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := SemiMajorKm / math.Sqrt(1-ecc2*sinLat*sinLat)
	x = (n + altKm) * cosLat * math.Cos(lon)
	y = (n + altKm) * cosLat * math.Sin(lon)
	z = (n*(1-ecc2) + altKm) * sinLat
	return
}

// RotateENU rotates a local east/north/up vector at the given
// geographic location into the Earth-centered Cartesian frame. The
// rotation preserves vector magnitude.
func RotateENU(latDeg, lonDeg, e, n, u float64) (x, y, z float64) {
	lat := radians(latDeg)
	lon := radians(lonDeg)
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)
	x = -sinLon*e - sinLat*cosLon*n + cosLat*cosLon*u
	y = cosLon*e - sinLat*sinLon*n + cosLat*sinLon*u
	z = cosLat*n + sinLat*u
	return
}

// ZoneFromLon returns the standard 6-degree UTM zone containing a
// longitude. Zone exceptions around Norway and Svalbard are not
// applied.
func ZoneFromLon(lonDeg float64) int {
	zone := int(math.Floor((lonDeg+180)/6)) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone
}

func centralMeridian(zone int) float64 {
	return float64((zone-1)*6 - 180 + 3)
}

// ToUTM projects geographic coordinates into the point's own UTM zone.
func ToUTM(latDeg, lonDeg float64) (east, north float64, zone int, northern bool) {
	zone = ZoneFromLon(lonDeg)
	northern = latDeg >= 0
	east, north = ToUTMZone(latDeg, lonDeg, zone, northern)
	return
}

// ToUTMZone projects geographic coordinates into a fixed UTM zone,
// which keeps datasets spanning a zone boundary on one continuous
// easting/northing plane.
func ToUTMZone(latDeg, lonDeg float64, zone int, northern bool) (east, north float64) {
	lat := radians(latDeg)
	lon := radians(lonDeg)
	lon0 := radians(centralMeridian(zone))

	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	tanLat := sinLat / cosLat

	n := SemiMajorM / math.Sqrt(1-ecc2*sinLat*sinLat)
	t := tanLat * tanLat
	c := eccP2 * cosLat * cosLat
	a := cosLat * (lon - lon0)

	m := SemiMajorM * ((1-ecc2/4-3*ecc2*ecc2/64-5*ecc2*ecc2*ecc2/256)*lat -
		(3*ecc2/8+3*ecc2*ecc2/32+45*ecc2*ecc2*ecc2/1024)*math.Sin(2*lat) +
		(15*ecc2*ecc2/256+45*ecc2*ecc2*ecc2/1024)*math.Sin(4*lat) -
		(35*ecc2*ecc2*ecc2/3072)*math.Sin(6*lat))

	east = UTMScale*n*(a+(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*eccP2)*a*a*a*a*a/120) + FalseEasting

	north = UTMScale * (m + n*tanLat*(a*a/2+
		(5-t+9*c+4*c*c)*a*a*a*a/24+
		(61-58*t+t*t+600*c-330*eccP2)*a*a*a*a*a*a/720))

	if !northern {
		north += FalseNorthing
	}
	return
}

// ToLatLon inverts a UTM projection given the zone and hemisphere
// stored alongside the coordinates.
func ToLatLon(east, north float64, zone int, northern bool) (latDeg, lonDeg float64) {
	x := east - FalseEasting
	y := north
	if !northern {
		y -= FalseNorthing
	}

	m := y / UTMScale
	mu := m / (SemiMajorM * (1 - ecc2/4 - 3*ecc2*ecc2/64 - 5*ecc2*ecc2*ecc2/256))

	e1 := (1 - math.Sqrt(1-ecc2)) / (1 + math.Sqrt(1-ecc2))
	phi1 := mu + (3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1, cosPhi1 := math.Sin(phi1), math.Cos(phi1)
	tanPhi1 := sinPhi1 / cosPhi1

	c1 := eccP2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := SemiMajorM / math.Sqrt(1-ecc2*sinPhi1*sinPhi1)
	r1 := SemiMajorM * (1 - ecc2) / math.Pow(1-ecc2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * UTMScale)

	lat := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*eccP2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*eccP2-3*c1*c1)*d*d*d*d*d*d/720)

	lon := (d - (1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*eccP2+24*t1*t1)*d*d*d*d*d/120) / cosPhi1

	latDeg = degrees(lat)
	lonDeg = centralMeridian(zone) + degrees(lon)
	return
}
