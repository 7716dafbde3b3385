package brc

import (
	"fmt"
	"math"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/geo"
)

// Minutes of clock time per degree of bearing: the face spans 720 minutes
// over 360 degrees, so each 15 degree step is one half-hour radial.
const minutesPerDegree = 2.0

// Translator converts coordinates into clock-and-ring addresses for one
// layout. Pure and total: every coordinate maps to an address, with points
// past the outermost ring landing on the beyond sentinel.
type Translator struct {
	layout *Layout
}

func NewTranslator(layout *Layout) *Translator {
	return &Translator{layout: layout}
}

// Translate maps a coordinate to its address via the (distance, bearing)
// pair from the golden spike.
func (t *Translator) Translate(p domain.Coordinate) domain.BrcAddress {
	dist := geo.Distance(t.layout.ReferencePoint, p)
	bearing := geo.Bearing(t.layout.ReferencePoint, p)

	return domain.BrcAddress{
		Clock: t.clockFor(bearing),
		Ring:  t.ringFor(dist),
	}
}

// clockFor maps a bearing to the nearest half-hour radial. Anchored so a
// bearing of 180 degrees reads 6:00; the layout's anchor offset rotates the
// whole face for recalibration.
func (t *Translator) clockFor(bearing float64) domain.ClockPosition {
	b := math.Mod(bearing+t.layout.ClockAnchorOffsetDeg, 360)
	if b < 0 {
		b += 360
	}

	// 24 half-hour slots around the face; slot 0 is 12:00.
	slot := int(math.Round(b*minutesPerDegree/30)) % 24
	minutes := slot * 30

	hour := minutes / 60
	if hour == 0 {
		hour = 12
	}
	return domain.ClockPosition(fmt.Sprintf("%d:%02d", hour, minutes%60))
}

// ringFor picks the tightest ring whose threshold covers the distance,
// scanning innermost-first. A point inside Esplanade still reads Esplanade;
// a point past the last ring reads the beyond sentinel.
func (t *Translator) ringFor(miles float64) domain.RingName {
	for _, band := range t.layout.Rings {
		if miles <= band.Miles {
			return band.Name
		}
	}
	return domain.RingBeyond
}
