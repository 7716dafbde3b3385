package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/geo"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
)

// CoordinateValidator is the single ingestion point turning loosely-typed
// raw fixes into Coordinate values. Range violations are errors; a fix
// outside the event's plausible bounding box only raises a warning, since a
// unit in transit legitimately leaves the area.
type CoordinateValidator struct {
	plausible geo.BBox
}

// NewCoordinateValidator builds a validator; plausible may be the zero box
// to disable the area check.
func NewCoordinateValidator(plausible geo.BBox) *CoordinateValidator {
	return &CoordinateValidator{plausible: plausible}
}

// Validate converts a raw fix into a Coordinate. The boolean reports the
// plausibility warning; the error is always a *domain.ValidationError.
func (v *CoordinateValidator) Validate(fix ports.RawFix) (domain.Coordinate, bool, error) {
	lat, err := toFloat("latitude", fix.Latitude)
	if err != nil {
		return domain.Coordinate{}, false, err
	}
	lon, err := toFloat("longitude", fix.Longitude)
	if err != nil {
		return domain.Coordinate{}, false, err
	}

	coord, err := domain.NewCoordinate(lat, lon)
	if err != nil {
		return domain.Coordinate{}, false, err
	}

	warning := !v.plausible.IsZero() && !v.plausible.Contains(coord)
	return coord, warning, nil
}

func toFloat(field string, raw any) (float64, error) {
	switch val := raw.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, &domain.ValidationError{Field: field, Reason: fmt.Sprintf("non-numeric value %q", val.String())}
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, &domain.ValidationError{Field: field, Reason: fmt.Sprintf("non-numeric value %q", val)}
		}
		return f, nil
	case nil:
		return 0, &domain.ValidationError{Field: field, Reason: "missing"}
	default:
		return 0, &domain.ValidationError{Field: field, Reason: fmt.Sprintf("unsupported type %T", raw)}
	}
}
