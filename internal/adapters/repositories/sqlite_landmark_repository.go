package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"
)

// SQLite-backed implementation of the LandmarkCatalog port. The catalog is
// read-mostly: an external loader seeds it, the engine reads whole
// snapshots out of it.
type SqliteLandmarkRepository struct{ DB *sql.DB }

func NewSqliteLandmarkRepository(db *sql.DB) *SqliteLandmarkRepository {
	return &SqliteLandmarkRepository{DB: db}
}

// Return all landmarks stored in the catalog.
func (s *SqliteLandmarkRepository) ListLandmarks(ctx context.Context) ([]domain.Landmark, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite landmark repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		category,
		lat,
		lon,
		active
	FROM landmarks
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list landmarks: query landmarks table: %w", err)
	}
	defer rows.Close()

	catalog := make([]domain.Landmark, 0, 64)
	for rows.Next() {
		var lm domain.Landmark
		var active int
		err := rows.Scan(&lm.ID, &lm.Name, &lm.Category, &lm.Location.Lat, &lm.Location.Lon, &active)
		if err != nil {
			return nil, fmt.Errorf("list landmarks: scan row: %w", err)
		}
		lm.Active = active != 0
		catalog = append(catalog, lm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list landmarks: row iteration: %w", err)
	}

	return catalog, nil
}

// Initialize the SQLite catalog schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS landmarks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		active INTEGER NOT NULL DEFAULT 1
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init schema: create landmarks table: %w", err)
	}

	return nil
}

type LandmarkSeed struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Active   *bool   `json:"active"`
}

// Populate the catalog with landmark data from a JSON file. Seeds without
// an id get a generated one; active defaults to true.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed landmarks: read %q: %w", jsonPath, err)
	}

	var data []LandmarkSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed landmarks: parse json: %w", err)
	}

	rows := make([]domain.Landmark, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed landmarks: item at index %d: name cannot be empty", i+1)
		}

		c, err := domain.NewCoordinate(item.Lat, item.Lon)
		if err != nil {
			return fmt.Errorf("seed landmarks: item %q: %w", name, err)
		}

		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = uuid.NewString()
		}

		active := true
		if item.Active != nil {
			active = *item.Active
		}

		rows = append(rows, domain.Landmark{
			ID:       id,
			Name:     name,
			Category: strings.TrimSpace(item.Category),
			Location: c,
			Active:   active,
		})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed landmarks: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO landmarks (
		id,
		name,
		category,
		lat,
		lon,
		active
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed landmarks: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, lm := range rows {
		active := 0
		if lm.Active {
			active = 1
		}
		if _, err := stmt.Exec(lm.ID, lm.Name, lm.Category, lm.Location.Lat, lm.Location.Lon, active); err != nil {
			return fmt.Errorf("seed landmarks: insert id=%q: %w", lm.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed landmarks: commit tx: %w", err)
	}

	return nil
}
