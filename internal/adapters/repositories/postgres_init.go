package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the Postgres schema used by shared deployments
// (station registry plus the shared geocode cache).
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS stations (
		station_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		price_per_hour DOUBLE PRECISION NOT NULL DEFAULT 0,
		available_slots INTEGER NOT NULL DEFAULT 0,
		total_ports INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		amenities TEXT NOT NULL DEFAULT '[]'
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL
    );
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// Populate a Postgres station registry from the same JSON seed format the
// SQLite path uses.
func SeedPostgresStations(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stations: read %q: %w", jsonPath, err)
	}

	var data []StationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed stations: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO stations (
		station_id, name, lat, lon, address,
		price_per_hour, available_slots, total_ports, status, amenities
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (station_id) DO UPDATE SET
		name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		address = EXCLUDED.address,
		price_per_hour = EXCLUDED.price_per_hour,
		available_slots = EXCLUDED.available_slots,
		total_ports = EXCLUDED.total_ports,
		status = EXCLUDED.status,
		amenities = EXCLUDED.amenities;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range data {
		status := s.Status
		if status == "" {
			status = "active"
		}

		amenities, err := json.Marshal(s.Amenities)
		if err != nil {
			return fmt.Errorf("seed stations: marshal amenities for %q: %w", s.StationID, err)
		}

		if _, err := stmt.Exec(
			s.StationID, s.Name, s.Lat, s.Lon, s.Address,
			s.PricePerHour, s.AvailableSlots, s.TotalPorts, status, string(amenities),
		); err != nil {
			return fmt.Errorf("seed stations: insert station_id=%q: %w", s.StationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stations: commit tx: %w", err)
	}

	return nil
}
