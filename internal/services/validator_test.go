package services

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/geo"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
)

var eventBounds = geo.BBox{
	MinLat: 40.763558, MaxLat: 40.807028,
	MinLon: -119.233566, MaxLon: -119.176407,
}

func TestValidateAcceptedTypes(t *testing.T) {
	v := NewCoordinateValidator(eventBounds)

	fixes := []ports.RawFix{
		{Latitude: 40.78696, Longitude: -119.20301},
		{Latitude: "40.78696", Longitude: "-119.20301"},
		{Latitude: " 40.78696 ", Longitude: "-119.20301"},
		{Latitude: json.Number("40.78696"), Longitude: json.Number("-119.20301")},
		{Latitude: float32(40.78696), Longitude: float32(-119.20301)},
	}

	for _, fix := range fixes {
		coord, warning, err := v.Validate(fix)
		if err != nil {
			t.Errorf("fix %v: unexpected error: %v", fix, err)
			continue
		}
		if warning {
			t.Errorf("fix %v: unexpected out-of-area warning", fix)
		}
		if coord.Lat < 40.786 || coord.Lat > 40.788 {
			t.Errorf("fix %v: lat = %v", fix, coord.Lat)
		}
	}
}

func TestValidateRejectsNonNumeric(t *testing.T) {
	v := NewCoordinateValidator(eventBounds)

	fixes := []ports.RawFix{
		{Latitude: "not-a-number", Longitude: -119.2},
		{Latitude: 40.7, Longitude: "nan?"},
		{Latitude: nil, Longitude: -119.2},
		{Latitude: []string{"40.7"}, Longitude: -119.2},
		{Latitude: json.Number("4x"), Longitude: -119.2},
	}

	for _, fix := range fixes {
		_, _, err := v.Validate(fix)
		if err == nil {
			t.Errorf("fix %v: expected error", fix)
			continue
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("fix %v: error %T is not a ValidationError", fix, err)
		}
	}
}

// strconv.ParseFloat happily parses "NaN" and "Inf", so a query string or
// sensor payload can deliver a non-finite value that range comparisons
// alone would wave through.
func TestValidateRejectsNonFinite(t *testing.T) {
	v := NewCoordinateValidator(eventBounds)

	fixes := []ports.RawFix{
		{Latitude: "NaN", Longitude: "0"},
		{Latitude: math.NaN(), Longitude: -119.2},
		{Latitude: 40.7, Longitude: math.NaN()},
		{Latitude: math.Inf(1), Longitude: -119.2},
		{Latitude: 40.7, Longitude: math.Inf(-1)},
		{Latitude: "+Inf", Longitude: "-119.2"},
		{Latitude: json.Number("40.7"), Longitude: "-Inf"},
	}

	for _, fix := range fixes {
		_, _, err := v.Validate(fix)
		if err == nil {
			t.Errorf("fix %v: expected error", fix)
			continue
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("fix %v: error %T is not a ValidationError", fix, err)
		}
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	v := NewCoordinateValidator(eventBounds)

	cases := []ports.RawFix{
		{Latitude: 91.0, Longitude: 0.0},
		{Latitude: -90.1, Longitude: 0.0},
		{Latitude: 0.0, Longitude: 180.5},
		{Latitude: 0.0, Longitude: -181.0},
	}

	for _, fix := range cases {
		if _, _, err := v.Validate(fix); err == nil {
			t.Errorf("fix %v: expected range error", fix)
		}
	}
}

func TestValidateOutOfAreaWarns(t *testing.T) {
	v := NewCoordinateValidator(eventBounds)

	// A perfectly valid fix in Reno: flagged, not rejected.
	coord, warning, err := v.Validate(ports.RawFix{Latitude: 39.52, Longitude: -119.81})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !warning {
		t.Fatal("expected out-of-area warning")
	}
	if coord.Lat != 39.52 {
		t.Fatalf("lat = %v", coord.Lat)
	}
}

func TestValidateZeroBoundsNeverWarn(t *testing.T) {
	v := NewCoordinateValidator(geo.BBox{})

	_, warning, err := v.Validate(ports.RawFix{Latitude: 39.52, Longitude: -119.81})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warning {
		t.Fatal("zero bounds must disable the plausibility check")
	}
}
