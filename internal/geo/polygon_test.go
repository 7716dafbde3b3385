package geo

import (
	"testing"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
)

// The event's pentagon fence, roughly.
var fenceVertices = []domain.Coordinate{
	{Lat: 40.782814, Lon: -119.233566},
	{Lat: 40.807028, Lon: -119.217274},
	{Lat: 40.802722, Lon: -119.181931},
	{Lat: 40.775857, Lon: -119.176407},
	{Lat: 40.763558, Lon: -119.208301},
}

func mustPolygon(t *testing.T) *Polygon {
	t.Helper()
	p, err := NewPolygon(fenceVertices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestNewPolygonRejectsDegenerate(t *testing.T) {
	_, err := NewPolygon([]domain.Coordinate{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})
	if err == nil {
		t.Fatal("expected error for 2-vertex polygon")
	}
}

func TestContainsCentroid(t *testing.T) {
	poly := mustPolygon(t)
	if !poly.Contains(poly.Centroid()) {
		t.Fatal("centroid should be inside the fence")
	}
}

func TestContainsGoldenSpike(t *testing.T) {
	poly := mustPolygon(t)
	if !poly.Contains(domain.Coordinate{Lat: 40.78696, Lon: -119.20301}) {
		t.Fatal("golden spike should be inside the fence")
	}
}

func TestContainsFarOutside(t *testing.T) {
	poly := mustPolygon(t)

	outside := []domain.Coordinate{
		{Lat: 39.5, Lon: -119.2},   // Reno-ish
		{Lat: 40.78696, Lon: -118}, // far east
		{Lat: 0, Lon: 0},
	}
	for _, p := range outside {
		if poly.Contains(p) {
			t.Errorf("%v should be outside the fence", p)
		}
	}
}

func TestContainsJustPastEdge(t *testing.T) {
	poly := mustPolygon(t)

	// Inside the bounding box but outside the pentagon: the box corner
	// near the south-east vertex.
	p := domain.Coordinate{Lat: 40.764, Lon: -119.178}
	if poly.Contains(p) {
		t.Fatalf("%v is in the bbox corner but outside the pentagon", p)
	}
}

func TestContainsHorizontalEdge(t *testing.T) {
	// Square with an explicit horizontal top edge.
	square, err := NewPolygon([]domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 2},
		{Lat: 2, Lon: 2},
		{Lat: 2, Lon: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !square.Contains(domain.Coordinate{Lat: 1, Lon: 1}) {
		t.Error("center of square should be inside")
	}
	// Ray at the exact latitude of the horizontal edges must not loop or
	// report a point well outside as inside.
	if square.Contains(domain.Coordinate{Lat: 2, Lon: 5}) {
		t.Error("point east of the top edge should be outside")
	}
	if square.Contains(domain.Coordinate{Lat: 3, Lon: 1}) {
		t.Error("point above the square should be outside")
	}
}

func TestBounds(t *testing.T) {
	poly := mustPolygon(t)
	b := poly.Bounds()

	if b.MinLat != 40.763558 || b.MaxLat != 40.807028 {
		t.Errorf("lat bounds = [%v, %v]", b.MinLat, b.MaxLat)
	}
	if b.MinLon != -119.233566 || b.MaxLon != -119.176407 {
		t.Errorf("lon bounds = [%v, %v]", b.MinLon, b.MaxLon)
	}

	if !b.Contains(domain.Coordinate{Lat: 40.78, Lon: -119.2}) {
		t.Error("bbox should contain interior point")
	}
	if b.Contains(domain.Coordinate{Lat: 41, Lon: -119.2}) {
		t.Error("bbox should not contain point north of it")
	}
	if b.IsZero() {
		t.Error("fence bbox should not be zero")
	}
	if !(BBox{}).IsZero() {
		t.Error("zero bbox should report IsZero")
	}
}
