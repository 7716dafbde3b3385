// Package geo holds the pure spherical-geometry primitives the location
// engine is built on: great-circle distance, initial bearing, and
// point-in-polygon containment. Nothing here has state or side effects.
package geo

import (
	"math"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
)

// Mean Earth radius in statute miles. All engine distances (ring table,
// landmark radii) are expressed in miles.
const EarthRadiusMiles = 3958.7613

// Distance returns the great-circle distance between two points in miles,
// using the Haversine formula. The spherical approximation error is well
// under the engine's sub-kilometer tolerance at city scale.
func Distance(a, b domain.Coordinate) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// Bearing returns the initial great-circle bearing from one point toward
// another, in degrees normalized to [0, 360).
func Bearing(from, to domain.Coordinate) float64 {
	lat1 := radians(from.Lat)
	lat2 := radians(to.Lat)
	dLon := radians(to.Lon - from.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := degrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// Destination projects a point a given distance (miles) along an initial
// bearing (degrees). Used by tests and tooling to construct coordinates at
// known addresses; the inverse of Distance+Bearing.
func Destination(from domain.Coordinate, bearingDeg, miles float64) domain.Coordinate {
	lat1 := radians(from.Lat)
	lon1 := radians(from.Lon)
	brng := radians(bearingDeg)
	d := miles / EarthRadiusMiles

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)

	return domain.Coordinate{Lat: degrees(lat2), Lon: normalizeLon(degrees(lon2))}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
