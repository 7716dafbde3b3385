// Package gps provides FixSource adapters for the external position
// collaborator: an HTTP poller for the real sensor bridge and a static
// source for development and tests.
package gps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
)

// HTTPFixSource polls a JSON endpoint shaped like {"lat": ..., "lon": ...}.
// The endpoint is free to send numbers or strings; values pass through
// untyped and the coordinate validator interprets them.
type HTTPFixSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPFixSource(url string) *HTTPFixSource {
	return &HTTPFixSource{
		URL:    url,
		Client: &http.Client{Timeout: 2 * time.Second},
	}
}

type fixPayload struct {
	Lat any `json:"lat"`
	Lon any `json:"lon"`
}

// FetchFix performs one GET against the fix endpoint.
func (s *HTTPFixSource) FetchFix(ctx context.Context) (ports.RawFix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return ports.RawFix{}, fmt.Errorf("fetch fix: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return ports.RawFix{}, fmt.Errorf("fetch fix: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.RawFix{}, fmt.Errorf("fetch fix: unexpected status %d", resp.StatusCode)
	}

	var payload fixPayload
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return ports.RawFix{}, fmt.Errorf("fetch fix: decode body: %w", err)
	}

	return ports.RawFix{Latitude: payload.Lat, Longitude: payload.Lon}, nil
}
