package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/api/dto"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/services"
)

// LandmarkHandler serves radius queries over the landmark catalog.
type LandmarkHandler struct {
	Service            *services.LocationService
	DefaultRadiusMiles float64
}

// Near handles GET /landmarks?lat=&lon=&radius=. Lat and lon pass through
// untyped to the coordinate validator; only the radius is parsed here.
func (h *LandmarkHandler) Near(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	q := r.URL.Query()

	radiusMiles := h.DefaultRadiusMiles
	if raw := strings.TrimSpace(q.Get("radius")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "radius must be a number of miles")
			return
		}
		radiusMiles = parsed
	}

	fix := ports.RawFix{Latitude: q.Get("lat"), Longitude: q.Get("lon")}
	found, err := h.Service.LandmarksNear(r.Context(), fix, radiusMiles)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, r, http.StatusBadRequest, verr.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.LandmarksResponse{
		Count:     len(found),
		Landmarks: make([]dto.LandmarkResponse, 0, len(found)),
	}
	for _, lm := range found {
		res.Landmarks = append(res.Landmarks, dto.FromLandmark(lm))
	}

	writeJSON(w, r, http.StatusOK, res)
}
