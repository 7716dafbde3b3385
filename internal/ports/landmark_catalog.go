package ports

import (
	"context"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
)

// Port: a boundary for reading the landmark catalog from a data source.
// Loading and refreshing the catalog is the persistence collaborator's
// concern; the engine only ever reads whole snapshots.
type LandmarkCatalog interface {
	// Retrieve every landmark, active or not.
	ListLandmarks(ctx context.Context) ([]domain.Landmark, error)
}
