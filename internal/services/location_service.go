package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/cache"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/landmarks"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/platform/obs"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
)

const (
	DefaultReportTTL   = 5 * time.Second
	DefaultLandmarkTTL = 25 * time.Second

	// The current report is one logical value, so its region holds a
	// single key: every caller inside a TTL window shares one fix.
	reportCacheKey = "current"
)

// LocationService is the engine's only external entry point. It memoizes
// full reports on a short TTL (the caller polls on nearly every
// conversation turn) and landmark radius queries on a longer one (landmark
// positions barely move).
type LocationService struct {
	source    ports.FixSource
	validator *CoordinateValidator
	resolver  *ProximityResolver
	index     *landmarks.Index

	reports *cache.TTL[domain.ProximityReport]
	nearby  *cache.TTL[[]domain.Landmark]

	reportTTL   time.Duration
	landmarkTTL time.Duration
}

func NewLocationService(
	source ports.FixSource,
	validator *CoordinateValidator,
	resolver *ProximityResolver,
	index *landmarks.Index,
	reportTTL, landmarkTTL time.Duration,
) *LocationService {
	if reportTTL <= 0 {
		reportTTL = DefaultReportTTL
	}
	if landmarkTTL <= 0 {
		landmarkTTL = DefaultLandmarkTTL
	}

	reports := cache.NewTTL[domain.ProximityReport]()
	reports.OnHit = func() { obs.CacheHitsTotal.WithLabelValues("report").Inc() }
	reports.OnMiss = func() { obs.CacheMissesTotal.WithLabelValues("report").Inc() }

	nearby := cache.NewTTL[[]domain.Landmark]()
	nearby.OnHit = func() { obs.CacheHitsTotal.WithLabelValues("landmarks").Inc() }
	nearby.OnMiss = func() { obs.CacheMissesTotal.WithLabelValues("landmarks").Inc() }

	return &LocationService{
		source:      source,
		validator:   validator,
		resolver:    resolver,
		index:       index,
		reports:     reports,
		nearby:      nearby,
		reportTTL:   reportTTL,
		landmarkTTL: landmarkTTL,
	}
}

// CurrentReport returns the memoized location report, fetching and
// resolving a fresh fix at most once per TTL window. A ValidationError from
// an unusable fix is the only failure that reaches the caller by contract;
// a failed fetch also surfaces, since there is nothing to report on.
func (s *LocationService) CurrentReport(ctx context.Context) (domain.ProximityReport, error) {
	// The computed report is shared by every caller coalesced onto this
	// flight, so it must not die with the leader's request context. The
	// fix source and backend carry their own timeouts.
	cctx := context.WithoutCancel(ctx)
	return s.reports.GetOrCompute(reportCacheKey, s.reportTTL, func() (domain.ProximityReport, error) {
		fix, err := s.source.FetchFix(cctx)
		if err != nil {
			obs.FixFetchFailuresTotal.Inc()
			return domain.ProximityReport{}, fmt.Errorf("current report: fetch fix: %w", err)
		}

		coord, warning, err := s.validator.Validate(fix)
		if err != nil {
			return domain.ProximityReport{}, err
		}

		report := s.resolver.Resolve(cctx, coord)
		report.OutOfArea = warning
		return report, nil
	})
}

// LandmarksNear returns active landmarks within radiusMiles of a point,
// memoized on a quantized (point, radius) key. Cache keys quantize to
// ~35 feet so a slowly drifting caller still hits. The fix goes through
// the validator untouched, so loosely-typed query input is fine.
func (s *LocationService) LandmarksNear(ctx context.Context, fix ports.RawFix, radiusMiles float64) ([]domain.Landmark, error) {
	coord, _, err := s.validator.Validate(fix)
	if err != nil {
		return nil, err
	}
	if radiusMiles < 0 {
		return nil, &domain.ValidationError{Field: "radius", Reason: fmt.Sprintf("%v must not be negative", radiusMiles)}
	}

	// Coalesced flight, same reasoning as CurrentReport.
	cctx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%.4f:%.4f:%.3f", coord.Lat, coord.Lon, radiusMiles)
	return s.nearby.GetOrCompute(key, s.landmarkTTL, func() ([]domain.Landmark, error) {
		return s.index.WithinRadius(cctx, coord, radiusMiles), nil
	})
}

// RefreshCatalog swaps in a new landmark snapshot and drops the current
// report so its landmark fields recompute. Memoized radius results age out
// on their own TTL.
func (s *LocationService) RefreshCatalog(catalog []domain.Landmark) {
	s.index.SetCatalog(catalog)
	s.reports.Invalidate(reportCacheKey)
}
