package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ev-route-service/internal/domain"
)

// SQLite-backed implementation of the StationRepository port.
type SqliteStationRepository struct{ DB *sql.DB }

func NewSqliteStationRepository(db *sql.DB) *SqliteStationRepository {
	return &SqliteStationRepository{DB: db}
}

// Return all registered stations. The result is a fresh snapshot; callers
// must not cache it across planning runs.
func (s *SqliteStationRepository) ListStations(ctx context.Context) ([]*domain.Station, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite station repository: DB is nil")
	}

	query := `
	SELECT
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
	FROM stations
	ORDER BY station_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0, 64)
	for rows.Next() {
		var st domain.Station
		var amenitiesJSON string
		err := rows.Scan(
			&st.StationID,
			&st.Name,
			&st.Location.Lat,
			&st.Location.Lon,
			&st.Address,
			&st.PricePerHour,
			&st.AvailableSlots,
			&st.TotalPorts,
			&st.Status,
			&amenitiesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}

		if amenitiesJSON != "" {
			if err := json.Unmarshal([]byte(amenitiesJSON), &st.Amenities); err != nil {
				return nil, fmt.Errorf("list stations: parse amenities for %q: %w", st.StationID, err)
			}
		}

		stations = append(stations, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}
