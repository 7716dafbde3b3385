package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinate (latitude, longitude) in decimal degrees.
// Constructed once at the validation boundary; nothing downstream mutates it.
type Coordinate struct {
	Lat float64
	Lon float64
}

// ValidationError reports an unusable raw fix. It is the only error the
// location engine surfaces to callers: everything else degrades to a
// fallback value instead of failing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid coordinate: %s %s", e.Field, e.Reason)
}

// Build a Coordinate, enforcing the latitude/longitude value ranges.
// NaN and the infinities never satisfy a range comparison the way finite
// values do, so they are screened out explicitly before the range checks.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return Coordinate{}, &ValidationError{
			Field:  "latitude",
			Reason: fmt.Sprintf("%v out of range [-90, 90]", lat),
		}
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return Coordinate{}, &ValidationError{
			Field:  "longitude",
			Reason: fmt.Sprintf("%v out of range [-180, 180]", lon),
		}
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
