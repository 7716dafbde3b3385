package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/api/handlers"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/brc"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters behind the location service.
func NewRouter(
	svc *services.LocationService,
	translator *brc.Translator,
	validator *services.CoordinateValidator,
	defaultRadiusMiles float64,
) http.Handler {
	mux := http.NewServeMux()

	locationHandler := &handlers.LocationHandler{Service: svc}
	landmarkHandler := &handlers.LandmarkHandler{
		Service:            svc,
		DefaultRadiusMiles: defaultRadiusMiles,
	}
	addressHandler := &handlers.AddressHandler{
		Translator: translator,
		Validator:  validator,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/location", locationHandler.Current)
	mux.HandleFunc("/landmarks", landmarkHandler.Near)
	mux.HandleFunc("/address", addressHandler.Translate)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(mux)
}
