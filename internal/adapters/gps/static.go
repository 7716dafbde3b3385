package gps

import (
	"context"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
)

// StaticFixSource always reports the same position. Used when no sensor
// bridge is configured (bench setups, local development).
type StaticFixSource struct {
	Lat float64
	Lon float64
}

func (s *StaticFixSource) FetchFix(ctx context.Context) (ports.RawFix, error) {
	return ports.RawFix{Latitude: s.Lat, Longitude: s.Lon}, nil
}
