package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
)

type stubStationRepo struct {
	stations []*domain.Station
	err      error
}

func (s *stubStationRepo) ListStations(ctx context.Context) ([]*domain.Station, error) {
	return s.stations, s.err
}

func TestStationHandlerList(t *testing.T) {
	h := &StationHandler{Repo: &stubStationRepo{stations: []*domain.Station{
		{
			StationID:      "st-jai-003",
			Name:           "Jaipur Tonk Road Supercharge",
			Location:       domain.Coordinates{Lon: 75.8056, Lat: 26.8206},
			Address:        "Tonk Rd, Jaipur",
			PricePerHour:   110,
			AvailableSlots: 6,
			TotalPorts:     8,
			Status:         "active",
			Amenities:      []string{"cafe", "wifi"},
		},
	}}}

	req := httptest.NewRequest(http.MethodGet, "/stations", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListStationsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Stations, 1)

	s := res.Stations[0]
	require.Equal(t, "st-jai-003", s.StationID)
	require.InDelta(t, 26.8206, s.Lat, 1e-9)
	require.Equal(t, 8, s.TotalPorts)
	require.Equal(t, []string{"cafe", "wifi"}, s.Amenities)
}

func TestStationHandlerListEmptyRegistry(t *testing.T) {
	h := &StationHandler{Repo: &stubStationRepo{}}

	req := httptest.NewRequest(http.MethodGet, "/stations", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListStationsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Empty(t, res.Stations)
}

func TestStationHandlerListRepoFailure(t *testing.T) {
	h := &StationHandler{Repo: &stubStationRepo{err: errors.New("db gone")}}

	req := httptest.NewRequest(http.MethodGet, "/stations", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStationHandlerListMethodNotAllowed(t *testing.T) {
	h := &StationHandler{Repo: &stubStationRepo{}}

	req := httptest.NewRequest(http.MethodPost, "/stations", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
