// Package brc implements the event's clock-and-ring addressing scheme:
// the layout configuration (golden spike, ring distance table, perimeter)
// and the translation of raw coordinates into addresses.
package brc

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/geo"
)

// RingBand names one concentric street and its radial distance from the
// golden spike in miles.
type RingBand struct {
	Name  domain.RingName
	Miles float64
}

// Layout is the single active city layout: the golden spike, the ring
// distance table (ascending), the clock anchor, and the trash fence.
// Built once at startup and injected; never mutated afterwards, so it is
// safe to share across workers without locking.
type Layout struct {
	ReferencePoint domain.Coordinate
	Rings          []RingBand
	Perimeter      *geo.Polygon

	// Degrees added to a computed bearing before clock mapping. The
	// documented formula (bearing 180 = 6:00) has historically drifted
	// against surveyed addresses, so the anchor stays tunable. Verified
	// against known reference addresses, default 0.
	ClockAnchorOffsetDeg float64
}

type layoutFile struct {
	ReferencePoint struct {
		Lat float64 `yaml:"lat"`
		Lon float64 `yaml:"lon"`
	} `yaml:"reference_point"`
	ClockAnchorOffsetDeg float64 `yaml:"clock_anchor_offset_deg"`
	Rings                []struct {
		Name  string  `yaml:"name"`
		Miles float64 `yaml:"miles"`
	} `yaml:"rings"`
	Perimeter []struct {
		Lat float64 `yaml:"lat"`
		Lon float64 `yaml:"lon"`
	} `yaml:"perimeter"`
}

// LoadLayout reads and validates a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: read %q: %w", path, err)
	}

	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("load layout: parse yaml: %w", err)
	}

	ref, err := domain.NewCoordinate(lf.ReferencePoint.Lat, lf.ReferencePoint.Lon)
	if err != nil {
		return nil, fmt.Errorf("load layout: reference point: %w", err)
	}

	rings := make([]RingBand, 0, len(lf.Rings))
	for _, r := range lf.Rings {
		rings = append(rings, RingBand{Name: domain.RingName(r.Name), Miles: r.Miles})
	}

	var perimeter []domain.Coordinate
	for i, v := range lf.Perimeter {
		c, err := domain.NewCoordinate(v.Lat, v.Lon)
		if err != nil {
			return nil, fmt.Errorf("load layout: perimeter vertex #%d: %w", i+1, err)
		}
		perimeter = append(perimeter, c)
	}

	return NewLayout(ref, rings, perimeter, lf.ClockAnchorOffsetDeg)
}

// NewLayout assembles and validates a layout from already-typed parts.
func NewLayout(
	ref domain.Coordinate,
	rings []RingBand,
	perimeter []domain.Coordinate,
	anchorOffsetDeg float64,
) (*Layout, error) {
	if len(rings) == 0 {
		return nil, errors.New("layout: ring table must not be empty")
	}
	for i := 1; i < len(rings); i++ {
		if rings[i].Miles <= rings[i-1].Miles {
			return nil, fmt.Errorf(
				"layout: ring table must be strictly ascending, %q (%.3f) after %q (%.3f)",
				rings[i].Name, rings[i].Miles, rings[i-1].Name, rings[i-1].Miles,
			)
		}
	}

	poly, err := geo.NewPolygon(perimeter)
	if err != nil {
		return nil, fmt.Errorf("layout: perimeter: %w", err)
	}

	bands := make([]RingBand, len(rings))
	copy(bands, rings)

	return &Layout{
		ReferencePoint:       ref,
		Rings:                bands,
		Perimeter:            poly,
		ClockAnchorOffsetDeg: anchorOffsetDeg,
	}, nil
}

// RingIndex returns the position of a ring in the table, with the beyond
// sentinel ordered after every named ring. Used for monotonicity checks.
func (l *Layout) RingIndex(name domain.RingName) int {
	for i, r := range l.Rings {
		if r.Name == name {
			return i
		}
	}
	return len(l.Rings)
}
