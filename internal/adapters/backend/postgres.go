package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
)

// PostgresBackend answers spatial queries with Haversine arithmetic pushed
// into SQL. Query contexts carry the landmark index's hard timeout, so an
// unreachable database surfaces as an error here and the caller degrades to
// its linear scan.
type PostgresBackend struct{ DB *sql.DB }

func NewPostgresBackend(db *sql.DB) *PostgresBackend {
	return &PostgresBackend{DB: db}
}

// Great-circle distance in miles between ($1, $2) and each landmark row.
const distanceExpr = `
	2 * 3958.7613 * asin(sqrt(
		pow(sin(radians(lat - $1) / 2), 2) +
		cos(radians($1)) * cos(radians(lat)) *
		pow(sin(radians(lon - $2) / 2), 2)
	))`

// Return active landmarks within radiusMiles of the point, nearest first.
func (b *PostgresBackend) WithinRadius(ctx context.Context, p domain.Coordinate, radiusMiles float64) ([]domain.Landmark, error) {
	if b.DB == nil {
		return nil, errors.New("postgres backend: DB is nil")
	}

	query := fmt.Sprintf(`
	SELECT id, name, category, lat, lon
	FROM (
		SELECT id, name, category, lat, lon, %s AS dist
		FROM landmarks
		WHERE active
	) q
	WHERE dist <= $3
	ORDER BY dist;
	`, distanceExpr)

	rows, err := b.DB.QueryContext(ctx, query, p.Lat, p.Lon, radiusMiles)
	if err != nil {
		return nil, fmt.Errorf("within radius: query landmarks: %w", err)
	}
	defer rows.Close()

	found := make([]domain.Landmark, 0, 16)
	for rows.Next() {
		lm, err := scanLandmark(rows)
		if err != nil {
			return nil, fmt.Errorf("within radius: %w", err)
		}
		found = append(found, lm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("within radius: row iteration: %w", err)
	}

	return found, nil
}

// Return the single nearest active landmark, or nil when none exist.
func (b *PostgresBackend) Nearest(ctx context.Context, p domain.Coordinate) (*domain.Landmark, error) {
	if b.DB == nil {
		return nil, errors.New("postgres backend: DB is nil")
	}

	query := fmt.Sprintf(`
	SELECT id, name, category, lat, lon
	FROM landmarks
	WHERE active
	ORDER BY %s
	LIMIT 1;
	`, distanceExpr)

	row := b.DB.QueryRowContext(ctx, query, p.Lat, p.Lon)

	var lm domain.Landmark
	err := row.Scan(&lm.ID, &lm.Name, &lm.Category, &lm.Location.Lat, &lm.Location.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("nearest: scan row: %w", err)
	}
	lm.Active = true

	return &lm, nil
}

// InitSchema creates the landmarks table for the indexed path.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("postgres backend: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS landmarks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

// UpsertLandmarks pushes a catalog snapshot into the landmarks table.
// Used by the catalog tool when the indexed path is configured.
func UpsertLandmarks(db *sql.DB, catalog []domain.Landmark) error {
	if db == nil {
		return errors.New("postgres backend: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("upsert landmarks: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT INTO landmarks (id, name, category, lat, lon, active)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		category = EXCLUDED.category,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		active = EXCLUDED.active;
	`)
	if err != nil {
		return fmt.Errorf("upsert landmarks: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, lm := range catalog {
		if _, err := stmt.Exec(lm.ID, lm.Name, lm.Category, lm.Location.Lat, lm.Location.Lon, lm.Active); err != nil {
			return fmt.Errorf("upsert landmarks: insert id=%q: %w", lm.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert landmarks: commit tx: %w", err)
	}
	return nil
}

func scanLandmark(rows *sql.Rows) (domain.Landmark, error) {
	var lm domain.Landmark
	if err := rows.Scan(&lm.ID, &lm.Name, &lm.Category, &lm.Location.Lat, &lm.Location.Lon); err != nil {
		return domain.Landmark{}, fmt.Errorf("scan row: %w", err)
	}
	lm.Active = true
	return lm, nil
}
