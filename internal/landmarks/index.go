// Package landmarks answers radius and nearest-neighbor queries over the
// event's point-of-interest catalog.
package landmarks

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/geo"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/platform/obs"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
)

// DefaultBackendTimeout bounds one indexed query so a slow backend cannot
// pin a request worker; past it the linear scan answers instead.
const DefaultBackendTimeout = 250 * time.Millisecond

// Index serves proximity queries, preferring an indexed spatial backend and
// degrading to a brute-force Haversine scan over the in-memory snapshot.
// Queries never hard-fail because of an unavailable backend.
//
// The snapshot is swapped whole on refresh, so in-flight readers see either
// the old catalog or the new one, never a partial update.
type Index struct {
	backend        ports.SpatialBackend
	snapshot       atomic.Pointer[[]domain.Landmark]
	backendTimeout time.Duration
}

// NewIndex builds an index over an initial catalog. backend may be nil, in
// which case every query takes the scan path.
func NewIndex(backend ports.SpatialBackend, catalog []domain.Landmark, backendTimeout time.Duration) *Index {
	if backendTimeout <= 0 {
		backendTimeout = DefaultBackendTimeout
	}
	idx := &Index{backend: backend, backendTimeout: backendTimeout}
	idx.SetCatalog(catalog)
	return idx
}

// SetCatalog atomically replaces the landmark snapshot and rebuilds the
// backend when it indexes in-process data.
func (idx *Index) SetCatalog(catalog []domain.Landmark) {
	snap := make([]domain.Landmark, len(catalog))
	copy(snap, catalog)
	idx.snapshot.Store(&snap)

	if rb, ok := idx.backend.(ports.RebuildableBackend); ok {
		rb.Rebuild(snap)
	}
}

// WithinRadius returns every active landmark within radiusMiles of p,
// nearest first.
func (idx *Index) WithinRadius(ctx context.Context, p domain.Coordinate, radiusMiles float64) []domain.Landmark {
	if idx.backend != nil {
		qctx, cancel := context.WithTimeout(ctx, idx.backendTimeout)
		found, err := idx.backend.WithinRadius(qctx, p, radiusMiles)
		cancel()
		if err == nil {
			return found
		}
		idx.noteFallback("within_radius", err)
	}
	return idx.scanWithinRadius(p, radiusMiles)
}

// Nearest returns the closest active landmark to p, or nil when no active
// landmark exists.
func (idx *Index) Nearest(ctx context.Context, p domain.Coordinate) *domain.Landmark {
	if idx.backend != nil {
		qctx, cancel := context.WithTimeout(ctx, idx.backendTimeout)
		found, err := idx.backend.Nearest(qctx, p)
		cancel()
		if err == nil {
			return found
		}
		idx.noteFallback("nearest", err)
	}
	return idx.scanNearest(p)
}

func (idx *Index) noteFallback(op string, err error) {
	obs.BackendFallbacksTotal.Inc()
	log.Warn().Err(err).Str("op", op).Msg("spatial backend unavailable, using linear scan")
}

// scanWithinRadius is the always-correct O(n) path over the snapshot.
func (idx *Index) scanWithinRadius(p domain.Coordinate, radiusMiles float64) []domain.Landmark {
	type scored struct {
		lm   domain.Landmark
		dist float64
	}

	var hits []scored
	for _, lm := range *idx.snapshot.Load() {
		if !lm.Active {
			continue
		}
		d := geo.Distance(p, lm.Location)
		if d <= radiusMiles {
			hits = append(hits, scored{lm: lm, dist: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]domain.Landmark, len(hits))
	for i, h := range hits {
		out[i] = h.lm
	}
	return out
}

func (idx *Index) scanNearest(p domain.Coordinate) *domain.Landmark {
	var best *domain.Landmark
	bestDist := 0.0

	for _, lm := range *idx.snapshot.Load() {
		if !lm.Active {
			continue
		}
		d := geo.Distance(p, lm.Location)
		if best == nil || d < bestDist {
			lm := lm
			best = &lm
			bestDist = d
		}
	}
	return best
}
