package brc

import (
	"testing"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/geo"
)

var testFence = []domain.Coordinate{
	{Lat: 40.782814, Lon: -119.233566},
	{Lat: 40.807028, Lon: -119.217274},
	{Lat: 40.802722, Lon: -119.181931},
	{Lat: 40.775857, Lon: -119.176407},
	{Lat: 40.763558, Lon: -119.208301},
}

func testLayout(t *testing.T, anchorOffset float64) *Layout {
	t.Helper()

	ref := domain.Coordinate{Lat: 40.78696, Lon: -119.20301}
	rings := []RingBand{
		{Name: "Esplanade", Miles: 0.472},
		{Name: "A", Miles: 0.557},
		{Name: "B", Miles: 0.602},
		{Name: "C", Miles: 0.648},
		{Name: "D", Miles: 0.693},
		{Name: "E", Miles: 0.739},
	}

	layout, err := NewLayout(ref, rings, testFence, anchorOffset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return layout
}

func TestTranslateSixAndEsplanade(t *testing.T) {
	layout := testLayout(t, 0)
	tr := NewTranslator(layout)

	// 0.3 miles from the spike at bearing 180.
	p := geo.Destination(layout.ReferencePoint, 180, 0.3)
	addr := tr.Translate(p)

	if addr.Clock != "6:00" {
		t.Errorf("clock = %q, want 6:00", addr.Clock)
	}
	if addr.Ring != "Esplanade" {
		t.Errorf("ring = %q, want Esplanade", addr.Ring)
	}
	if got := addr.String(); got != "6:00 & Esplanade" {
		t.Errorf("display = %q, want %q", got, "6:00 & Esplanade")
	}
}

func TestTranslateOrigin(t *testing.T) {
	layout := testLayout(t, 0)
	tr := NewTranslator(layout)

	// Translating the reference point itself must not panic or divide by
	// zero; it clamps to the innermost ring with a defined clock.
	addr := tr.Translate(layout.ReferencePoint)
	if addr.Ring != "Esplanade" {
		t.Errorf("ring = %q, want Esplanade", addr.Ring)
	}
	if addr.Clock == "" {
		t.Error("clock must be defined at the origin")
	}
}

func TestTranslateBeyondOuterRing(t *testing.T) {
	layout := testLayout(t, 0)
	tr := NewTranslator(layout)

	p := geo.Destination(layout.ReferencePoint, 180, 2.0)
	addr := tr.Translate(p)

	if addr.Ring != domain.RingBeyond {
		t.Fatalf("ring = %q, want the beyond sentinel", addr.Ring)
	}
}

func TestTranslateClockFace(t *testing.T) {
	layout := testLayout(t, 0)
	tr := NewTranslator(layout)

	cases := []struct {
		bearing float64
		want    domain.ClockPosition
	}{
		{0, "12:00"},
		{45, "1:30"},
		{60, "2:00"},
		{90, "3:00"},
		{180, "6:00"},
		{190, "6:30"}, // rounds to the nearest half hour
		{270, "9:00"},
		{300, "10:00"},
		{352.4, "11:30"},
		{356, "12:00"}, // wraps past the top of the face
	}

	for _, tc := range cases {
		p := geo.Destination(layout.ReferencePoint, tc.bearing, 0.3)
		addr := tr.Translate(p)
		if addr.Clock != tc.want {
			t.Errorf("bearing %v: clock = %q, want %q", tc.bearing, addr.Clock, tc.want)
		}
	}
}

func TestTranslateAnchorOffset(t *testing.T) {
	// Rotating the whole face by 15 degrees shifts every radial by one
	// half-hour slot.
	layout := testLayout(t, 15)
	tr := NewTranslator(layout)

	p := geo.Destination(layout.ReferencePoint, 180, 0.3)
	addr := tr.Translate(p)
	if addr.Clock != "6:30" {
		t.Errorf("clock = %q, want 6:30 with +15 degree anchor", addr.Clock)
	}
}

func TestRingMonotonicAlongBearing(t *testing.T) {
	layout := testLayout(t, 0)
	tr := NewTranslator(layout)

	prev := -1
	for miles := 0.05; miles <= 1.5; miles += 0.05 {
		p := geo.Destination(layout.ReferencePoint, 240, miles)
		addr := tr.Translate(p)

		idx := layout.RingIndex(addr.Ring)
		if idx < prev {
			t.Fatalf("ring index decreased at %.2f miles: %d after %d", miles, idx, prev)
		}
		prev = idx
	}
}

func TestNewLayoutRejectsUnorderedRings(t *testing.T) {
	ref := domain.Coordinate{Lat: 40.78696, Lon: -119.20301}
	rings := []RingBand{
		{Name: "Esplanade", Miles: 0.472},
		{Name: "A", Miles: 0.4}, // out of order
	}

	if _, err := NewLayout(ref, rings, testFence, 0); err == nil {
		t.Fatal("expected error for non-ascending ring table")
	}
}

func TestNewLayoutRejectsEmptyRings(t *testing.T) {
	ref := domain.Coordinate{Lat: 40.78696, Lon: -119.20301}
	if _, err := NewLayout(ref, nil, testFence, 0); err == nil {
		t.Fatal("expected error for empty ring table")
	}
}
