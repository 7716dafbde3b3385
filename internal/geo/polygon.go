package geo

import (
	"errors"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
)

// Polygon is a closed boundary (the trash fence). Vertices are ordered;
// the closing edge from the last vertex back to the first is implicit.
// Polygons are built once at startup and never mutated, so containment
// checks need no locking.
type Polygon struct {
	vertices []domain.Coordinate
	bbox     BBox
}

// BBox is an axis-aligned lat/lon bounding box.
type BBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether a point falls inside the box (inclusive).
func (b BBox) Contains(p domain.Coordinate) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// IsZero reports whether the box was never set.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLon == 0 && b.MaxLon == 0
}

// NewPolygon builds a polygon from at least three vertices and precomputes
// its bounding box.
func NewPolygon(vertices []domain.Coordinate) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, errors.New("polygon: need at least 3 vertices")
	}

	bbox := BBox{
		MinLat: vertices[0].Lat, MaxLat: vertices[0].Lat,
		MinLon: vertices[0].Lon, MaxLon: vertices[0].Lon,
	}
	for _, v := range vertices[1:] {
		if v.Lat < bbox.MinLat {
			bbox.MinLat = v.Lat
		}
		if v.Lat > bbox.MaxLat {
			bbox.MaxLat = v.Lat
		}
		if v.Lon < bbox.MinLon {
			bbox.MinLon = v.Lon
		}
		if v.Lon > bbox.MaxLon {
			bbox.MaxLon = v.Lon
		}
	}

	verts := make([]domain.Coordinate, len(vertices))
	copy(verts, vertices)
	return &Polygon{vertices: verts, bbox: bbox}, nil
}

// Bounds returns the polygon's bounding box.
func (p *Polygon) Bounds() BBox { return p.bbox }

// Contains tests point-in-polygon by ray casting: a horizontal ray from the
// point eastward crosses the boundary an odd number of times iff the point
// is inside. The half-open edge test (one endpoint strictly above, one at or
// below) keeps horizontal edges and vertex hits from double counting.
func (p *Polygon) Contains(pt domain.Coordinate) bool {
	if !p.bbox.Contains(pt) {
		return false
	}

	inside := false
	n := len(p.vertices)
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.vertices[i]
		vj := p.vertices[j]

		if (vi.Lat > pt.Lat) != (vj.Lat > pt.Lat) {
			// Longitude where the edge crosses the ray's latitude.
			crossLon := vj.Lon + (pt.Lat-vj.Lat)/(vi.Lat-vj.Lat)*(vi.Lon-vj.Lon)
			if pt.Lon < crossLon {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Centroid returns the vertex-average center of the polygon. Good enough
// for "a point comfortably inside" on convex fence shapes.
func (p *Polygon) Centroid() domain.Coordinate {
	var lat, lon float64
	for _, v := range p.vertices {
		lat += v.Lat
		lon += v.Lon
	}
	n := float64(len(p.vertices))
	return domain.Coordinate{Lat: lat / n, Lon: lon / n}
}
