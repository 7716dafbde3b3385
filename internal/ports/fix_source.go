package ports

import "context"

// RawFix is one position sample as it arrives from the GPS collaborator.
// Values are deliberately untyped: sensor and HTTP transports deliver
// floats, strings, or json.Number, and only the coordinate validator is
// allowed to interpret them.
type RawFix struct {
	Latitude  any
	Longitude any
}

// Port: a boundary for fetching the current raw coordinate. Polled on every
// report request; the source owns its own cadence and transport.
type FixSource interface {
	FetchFix(ctx context.Context) (RawFix, error)
}
