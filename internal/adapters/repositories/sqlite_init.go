package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"ev-route-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		station_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		price_per_hour REAL NOT NULL DEFAULT 0,
		available_slots INTEGER NOT NULL DEFAULT 0,
		total_ports INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		amenities TEXT NOT NULL DEFAULT '[]'
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	statements := []string{
		createStationsQuery,
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StationSeed struct {
	StationID      string   `json:"station_id"`
	Name           string   `json:"name"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	Address        string   `json:"address"`
	PricePerHour   float64  `json:"price_per_hour"`
	AvailableSlots int      `json:"available_slots"`
	TotalPorts     int      `json:"total_ports"`
	Status         string   `json:"status"`
	Amenities      []string `json:"amenities"`
}

// Populate the database with station data from a JSON file.
func SeedStationsFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stations: read %q: %w", jsonPath, err)
	}

	var data []StationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed stations: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.StationID) == "" {
			return fmt.Errorf("seed stations: item at index %d: station_id cannot be empty", i+1)
		}
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("seed stations: item at index %d: name cannot be empty", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO stations (
		station_id,
		name,
		lat,
		lon,
		address,
		price_per_hour,
		available_slots,
		total_ports,
		status,
		amenities
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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

type landmarkSeed struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// LoadLandmarksFromJSON reads the force-included landmark list from a seed
// file. The landmark set is deployment configuration; the planning engine
// has no built-in regional knowledge.
func LoadLandmarksFromJSON(jsonPath string) ([]domain.Landmark, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load landmarks: read %q: %w", jsonPath, err)
	}

	var data []landmarkSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load landmarks: parse json: %w", err)
	}

	landmarks := make([]domain.Landmark, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("load landmarks: item at index %d: name cannot be empty", i+1)
		}

		landmarks = append(landmarks, domain.Landmark{
			Name:     name,
			Location: domain.Coordinates{Lat: item.Lat, Lon: item.Lon},
		})
	}

	return landmarks, nil
}
