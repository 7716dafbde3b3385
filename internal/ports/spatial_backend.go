package ports

import (
	"context"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
)

// Port: a boundary for indexed spatial queries over active landmarks.
// Implementations may be a database spatial index or an in-process R-tree.
// A backend error or timeout never reaches LocationService callers; the
// landmark index degrades to its linear scan instead.
type SpatialBackend interface {
	// Return active landmarks within radiusMiles of the point.
	WithinRadius(ctx context.Context, p domain.Coordinate, radiusMiles float64) ([]domain.Landmark, error)
	// Return the nearest active landmark, or nil when the catalog is empty.
	Nearest(ctx context.Context, p domain.Coordinate) (*domain.Landmark, error)
}

// Optional extension for backends that index an in-process snapshot and
// must be rebuilt when the catalog refreshes.
type RebuildableBackend interface {
	SpatialBackend
	Rebuild(landmarks []domain.Landmark)
}
