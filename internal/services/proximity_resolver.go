package services

import (
	"context"
	"time"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/brc"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/geo"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/landmarks"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/platform/obs"
)

// ProximityResolver assembles one ProximityReport per validated coordinate:
// address translation, perimeter containment, and landmark queries. It is
// stateless and lock-free; only the facade's cache synchronizes.
type ProximityResolver struct {
	translator  *brc.Translator
	perimeter   *geo.Polygon
	index       *landmarks.Index
	radiusMiles float64
}

func NewProximityResolver(
	translator *brc.Translator,
	perimeter *geo.Polygon,
	index *landmarks.Index,
	radiusMiles float64,
) *ProximityResolver {
	return &ProximityResolver{
		translator:  translator,
		perimeter:   perimeter,
		index:       index,
		radiusMiles: radiusMiles,
	}
}

// Resolve computes a fresh report. The three sub-queries are independent;
// the landmark index absorbs its own failures internally, so a degraded
// landmark view leaves the address and perimeter answers intact.
func (r *ProximityResolver) Resolve(ctx context.Context, c domain.Coordinate) domain.ProximityReport {
	start := time.Now()

	report := domain.ProximityReport{
		Coordinate:      c,
		Address:         r.translator.Translate(c),
		InsidePerimeter: r.perimeter.Contains(c),
	}

	if r.index != nil {
		if nearest := r.index.Nearest(ctx, c); nearest != nil {
			report.NearestLandmark = nearest
			report.DistanceToNearest = geo.Distance(c, nearest.Location)
		}
		report.LandmarksInRadius = r.index.WithinRadius(ctx, c, r.radiusMiles)
	}

	obs.ResolveDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	return report
}
