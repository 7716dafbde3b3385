// Package backend provides the concrete spatial backends behind the
// ports.SpatialBackend boundary: an in-process R-tree and a Postgres index.
package backend

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/geo"
)

// Degenerate rectangles are not allowed in the tree, so points get a
// vanishingly small extent.
const pointExtent = 1e-9

// Approximate miles per degree of latitude, for converting a search radius
// into a candidate bounding box. Candidates are then filtered by exact
// Haversine distance, so the approximation only affects the box size.
const milesPerDegreeLat = 69.172

// RTreeBackend indexes the active landmark snapshot in an in-process
// R-tree keyed on (lat, lon) degrees. Rebuilt whole on catalog refresh;
// queries hold only a read lock.
type RTreeBackend struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
}

type landmarkItem struct {
	lm   domain.Landmark
	rect rtreego.Rect
}

func (it *landmarkItem) Bounds() rtreego.Rect { return it.rect }

func NewRTreeBackend(catalog []domain.Landmark) *RTreeBackend {
	b := &RTreeBackend{}
	b.Rebuild(catalog)
	return b
}

// Rebuild replaces the tree with one built from the given snapshot.
// Inactive landmarks are excluded at build time.
func (b *RTreeBackend) Rebuild(catalog []domain.Landmark) {
	tree := rtreego.NewTree(2, 4, 8)
	for _, lm := range catalog {
		if !lm.Active {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{lm.Location.Lat, lm.Location.Lon},
			[]float64{pointExtent, pointExtent},
		)
		if err != nil {
			continue
		}
		tree.Insert(&landmarkItem{lm: lm, rect: rect})
	}

	b.mu.Lock()
	b.tree = tree
	b.mu.Unlock()
}

// WithinRadius searches a degree-space bounding box around the point and
// filters candidates by exact great-circle distance, nearest first.
func (b *RTreeBackend) WithinRadius(ctx context.Context, p domain.Coordinate, radiusMiles float64) ([]domain.Landmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds, err := searchRect(p, radiusMiles)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	candidates := b.tree.SearchIntersect(bounds)
	b.mu.RUnlock()

	type scored struct {
		lm   domain.Landmark
		dist float64
	}
	var hits []scored
	for _, c := range candidates {
		item, ok := c.(*landmarkItem)
		if !ok {
			continue
		}
		d := geo.Distance(p, item.lm.Location)
		if d <= radiusMiles {
			hits = append(hits, scored{lm: item.lm, dist: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]domain.Landmark, len(hits))
	for i, h := range hits {
		out[i] = h.lm
	}
	return out, nil
}

// Nearest pulls a handful of degree-space nearest neighbors and ranks them
// by exact distance, since longitude degrees shrink with latitude and the
// tree's Euclidean ordering can disagree with the great-circle one on
// close calls.
func (b *RTreeBackend) Nearest(ctx context.Context, p domain.Coordinate) (*domain.Landmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	candidates := b.tree.NearestNeighbors(8, rtreego.Point{p.Lat, p.Lon})
	b.mu.RUnlock()

	var best *domain.Landmark
	bestDist := 0.0
	for _, c := range candidates {
		item, ok := c.(*landmarkItem)
		if !ok || item == nil {
			continue
		}
		d := geo.Distance(p, item.lm.Location)
		if best == nil || d < bestDist {
			lm := item.lm
			best = &lm
			bestDist = d
		}
	}
	return best, nil
}

// searchRect builds the candidate bounding box for a radius query.
func searchRect(p domain.Coordinate, radiusMiles float64) (rtreego.Rect, error) {
	dLat := radiusMiles / milesPerDegreeLat

	cosLat := math.Cos(p.Lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLon := radiusMiles / (milesPerDegreeLat * cosLat)

	return rtreego.NewRect(
		rtreego.Point{p.Lat - dLat, p.Lon - dLon},
		[]float64{2*dLat + pointExtent, 2*dLon + pointExtent},
	)
}
