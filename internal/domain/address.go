package domain

import "fmt"

// ClockPosition is a time-of-day radial ("2:00" through "10:00" in the
// populated arc) measured as a bearing from the golden spike.
type ClockPosition string

// RingName is one of the named concentric streets, ordered outward from
// Esplanade. RingBeyond is the sentinel for points past the outermost ring;
// it is a normal value, not an error condition.
type RingName string

const RingBeyond RingName = "beyond"

// BrcAddress locates a point in the city's clock-and-ring scheme,
// e.g. "6:00 & Esplanade". Derivable from exactly one (distance, bearing)
// pair relative to the golden spike.
type BrcAddress struct {
	Clock ClockPosition
	Ring  RingName
}

func (a BrcAddress) String() string {
	if a.Ring == RingBeyond {
		return fmt.Sprintf("%s, beyond the outer ring", a.Clock)
	}
	return fmt.Sprintf("%s & %s", a.Clock, a.Ring)
}
