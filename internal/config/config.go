// Package config reads the process environment into a typed Config.
// The event layout itself (golden spike, rings, fence) lives in a YAML file
// loaded separately by the brc package; this covers everything else.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	LayoutPath  string
	CatalogPath string
	SeedPath    string

	// Optional postgres DSN for the indexed spatial path. Empty means the
	// in-process R-tree backend.
	DatabaseURL string

	// Optional GPS bridge endpoint. Empty means a static fix at the
	// configured fallback position.
	GPSURL    string
	StaticLat float64
	StaticLon float64

	Backend string // "postgres", "rtree", or "none"

	ReportTTL       time.Duration
	LandmarkTTL     time.Duration
	BackendTimeout  time.Duration
	RefreshInterval time.Duration

	DefaultRadiusMiles float64

	LogLevel  string
	LogFormat string
}

// Load reads every setting with its fallback. godotenv runs in main before
// this, so .env values are already in the environment.
func Load() *Config {
	return &Config{
		Port:               Get("PORT", "8080"),
		LayoutPath:         Get("LAYOUT_PATH", "data/layout.yaml"),
		CatalogPath:        Get("CATALOG_PATH", "data/catalog.db"),
		SeedPath:           Get("SEED_PATH", "data/seeds/landmarks.json"),
		DatabaseURL:        Get("DATABASE_URL", ""),
		GPSURL:             Get("GPS_URL", ""),
		StaticLat:          GetFloat("STATIC_LAT", 40.78696),
		StaticLon:          GetFloat("STATIC_LON", -119.20301),
		Backend:            Get("SPATIAL_BACKEND", "rtree"),
		ReportTTL:          GetDuration("REPORT_TTL", 5*time.Second),
		LandmarkTTL:        GetDuration("LANDMARK_TTL", 25*time.Second),
		BackendTimeout:     GetDuration("BACKEND_TIMEOUT", 250*time.Millisecond),
		RefreshInterval:    GetDuration("CATALOG_REFRESH_INTERVAL", 5*time.Minute),
		DefaultRadiusMiles: GetFloat("DEFAULT_RADIUS_MILES", 0.5),
		LogLevel:           Get("LOG_LEVEL", "info"),
		LogFormat:          Get("LOG_FORMAT", "console"),
	}
}

// Get returns an environment variable or its fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetDuration parses a duration variable, keeping the fallback on absence
// or parse failure.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// GetFloat parses a float variable, keeping the fallback on absence or
// parse failure.
func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
