package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS observations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			city TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			temperature REAL NOT NULL,
			humidity REAL NOT NULL,
			rainfall REAL NOT NULL,
			wind_speed REAL NOT NULL,
			pressure REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_observations_city_id ON observations(city, id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Append(ctx context.Context, obs models.Observation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observations (city, timestamp, temperature, humidity, rainfall, wind_speed, pressure)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		obs.City, obs.Timestamp, obs.Temperature, obs.Humidity, obs.Rainfall, obs.WindSpeed, obs.Pressure,
	)
	if err != nil {
		return fmt.Errorf("error inserting observation: %w", err)
	}
	return nil
}

func (s *SQLiteDB) RecentByCity(ctx context.Context, city string, limit int) ([]models.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT city, timestamp, temperature, humidity, rainfall, wind_speed, pressure
		FROM (
			SELECT * FROM observations WHERE city = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		city, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying observations: %w", err)
	}
	defer rows.Close()

	var out []models.Observation
	for rows.Next() {
		var obs models.Observation
		if err := rows.Scan(&obs.City, &obs.Timestamp, &obs.Temperature, &obs.Humidity,
			&obs.Rainfall, &obs.WindSpeed, &obs.Pressure); err != nil {
			return nil, fmt.Errorf("error scanning observation: %w", err)
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}

func (s *SQLiteDB) Prune(ctx context.Context, city string, keep int) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM observations
		WHERE city = ? AND id NOT IN (
			SELECT id FROM observations WHERE city = ? ORDER BY id DESC LIMIT ?
		)`,
		city, city, keep,
	)
	if err != nil {
		return fmt.Errorf("error pruning observations: %w", err)
	}
	return nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
