package handlers

import (
	"errors"
	"net/http"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/api/dto"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/brc"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/services"
)

// AddressHandler exposes the address translator directly, for callers that
// only need the clock-and-ring string for an arbitrary point.
type AddressHandler struct {
	Translator *brc.Translator
	Validator  *services.CoordinateValidator
}

// Translate handles GET /address?lat=&lon=.
func (h *AddressHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	q := r.URL.Query()
	fix := ports.RawFix{Latitude: q.Get("lat"), Longitude: q.Get("lon")}

	coord, _, err := h.Validator.Validate(fix)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, r, http.StatusBadRequest, verr.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid coordinate")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromAddress(h.Translator.Translate(coord)))
}
