package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/adapters/backend"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/adapters/repositories"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/config"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/platform/db"
	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/platform/logging"
)

// catalogtool initializes the local landmark catalog and seeds it from a
// JSON file. When DATABASE_URL is set, the seeded catalog is also pushed
// into Postgres for the indexed spatial path.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	catalogDB, err := db.OpenSQLite(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog database")
	}
	defer catalogDB.Close()

	log.Info().Str("path", cfg.CatalogPath).Msg("initializing catalog schema")
	if err := repositories.InitSchema(catalogDB); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}

	log.Info().Str("seed", cfg.SeedPath).Msg("seeding landmarks")
	if err := repositories.SeedFromJSON(catalogDB, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	repo := repositories.NewSqliteLandmarkRepository(catalogDB)
	catalog, err := repo.ListLandmarks(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read back catalog")
	}
	log.Info().Int("landmarks", len(catalog)).Msg("catalog ready")

	if strings.TrimSpace(os.Getenv("DATABASE_URL")) == "" {
		return
	}

	pg, err := db.Open(cfg.DatabaseURL, db.DefaultPoolSettings())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pg.Close()

	if err := backend.InitSchema(pg); err != nil {
		log.Fatal().Err(err).Msg("postgres schema initialization failed")
	}
	if err := backend.UpsertLandmarks(pg, catalog); err != nil {
		log.Fatal().Err(err).Msg("postgres push failed")
	}
	log.Info().Int("landmarks", len(catalog)).Msg("pushed catalog to postgres")
}
