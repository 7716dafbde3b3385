package domain

// A point of interest from the event catalog (camps, art, services).
// Landmarks are created and refreshed by an external loader; the proximity
// engine only reads them.
type Landmark struct {
	ID       string
	Name     string
	Category string
	Location Coordinate
	Active   bool
}

// ProximityReport is the engine's answer for one resolved coordinate.
// Created fresh per resolution and never mutated afterwards, so it is safe
// to hand the same report to concurrent callers and cache entries.
type ProximityReport struct {
	Coordinate        Coordinate
	Address           BrcAddress
	NearestLandmark   *Landmark
	DistanceToNearest float64
	LandmarksInRadius []Landmark
	InsidePerimeter   bool

	// Set when the fix validated but fell outside the event's plausible
	// bounding box (a unit in transit legitimately leaves the area).
	OutOfArea bool
}
