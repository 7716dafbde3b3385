package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/api/dto"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/services"
)

// LocationHandler serves the current location report.
type LocationHandler struct {
	Service *services.LocationService
}

func (h *LocationHandler) Current(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	report, err := h.Service.CurrentReport(r.Context())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, r, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		log.Error().Err(err).Msg("current report failed")
		writeError(w, r, http.StatusServiceUnavailable, "location unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromReport(report))
}
