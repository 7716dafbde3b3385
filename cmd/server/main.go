package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/adapters/backend"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/adapters/gps"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/adapters/repositories"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/api"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/brc"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/config"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/landmarks"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/platform/db"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/platform/logging"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/platform/obs"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/ports"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/services"
)

// main is the application composition root. It loads the event layout,
// wires concrete adapters (SQLite catalog, spatial backend, GPS source)
// behind ports, and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	obs.Register()

	layout, err := brc.LoadLayout(cfg.LayoutPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load event layout")
	}

	catalogDB, err := db.OpenSQLite(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open landmark catalog")
	}
	defer catalogDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(catalogDB); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog schema")
	}
	if err := repositories.SeedFromJSON(catalogDB, cfg.SeedPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.SeedPath).Msg("catalog seed skipped")
	}

	repo := repositories.NewSqliteLandmarkRepository(catalogDB)
	catalog, err := repo.ListLandmarks(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load landmark catalog")
	}

	spatial, err := buildBackend(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build spatial backend")
	}

	index := landmarks.NewIndex(spatial, catalog, cfg.BackendTimeout)
	translator := brc.NewTranslator(layout)
	validator := services.NewCoordinateValidator(layout.Perimeter.Bounds())
	resolver := services.NewProximityResolver(translator, layout.Perimeter, index, cfg.DefaultRadiusMiles)

	var source ports.FixSource
	if cfg.GPSURL != "" {
		source = gps.NewHTTPFixSource(cfg.GPSURL)
	} else {
		log.Info().Float64("lat", cfg.StaticLat).Float64("lon", cfg.StaticLon).Msg("no GPS_URL, using static fix")
		source = &gps.StaticFixSource{Lat: cfg.StaticLat, Lon: cfg.StaticLon}
	}

	svc := services.NewLocationService(source, validator, resolver, index, cfg.ReportTTL, cfg.LandmarkTTL)

	if cfg.RefreshInterval > 0 {
		go refreshCatalog(repo, svc, cfg.RefreshInterval)
	}

	router := api.NewRouter(svc, translator, validator, cfg.DefaultRadiusMiles)

	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.Backend).
		Int("landmarks", len(catalog)).
		Msg("server listening")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

func buildBackend(cfg *config.Config) (ports.SpatialBackend, error) {
	switch cfg.Backend {
	case "postgres":
		pg, err := db.Open(cfg.DatabaseURL, db.DefaultPoolSettings())
		if err != nil {
			return nil, err
		}
		return backend.NewPostgresBackend(pg), nil
	case "rtree":
		// Built empty here; the landmark index rebuilds it with each
		// catalog snapshot.
		return backend.NewRTreeBackend(nil), nil
	default:
		// Linear scan only.
		return nil, nil
	}
}

// refreshCatalog periodically re-reads the catalog so externally loaded
// landmarks show up without a restart. Readers swap snapshots atomically.
func refreshCatalog(repo *repositories.SqliteLandmarkRepository, svc *services.LocationService, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		catalog, err := repo.ListLandmarks(ctx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("catalog refresh failed")
			continue
		}
		svc.RefreshCatalog(catalog)
		log.Debug().Int("landmarks", len(catalog)).Msg("catalog refreshed")
	}
}
