package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

type memGeocodeCache struct {
	entries map[string]domain.Coordinates
	puts    int
}

func newMemGeocodeCache() *memGeocodeCache {
	return &memGeocodeCache{entries: make(map[string]domain.Coordinates)}
}

func (m *memGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates)
	for _, a := range addresses {
		if c, ok := m.entries[a]; ok {
			out[a] = c
		}
	}
	return out, nil
}

func (m *memGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	m.puts++
	for k, v := range results {
		m.entries[k] = v
	}
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, cache ports.GeocodeCache) *ORSClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewORSClient("test-key", cache)
	require.NoError(t, err)
	client.SetBaseURL(srv.URL)
	return client
}

func directionsPayload(t *testing.T, distance, duration float64, coords [][]float64) []byte {
	t.Helper()

	body := map[string]any{
		"routes": []map[string]any{{
			"summary":  map[string]float64{"distance": distance, "duration": duration},
			"segments": []map[string]float64{{"distance": distance, "duration": duration}},
			"geometry": string(polyline.EncodeCoords(coords)),
		}},
	}
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return b
}

func TestORSClientRoute(t *testing.T) {
	var gotBody struct {
		Coordinates [][]float64 `json:"coordinates"`
		Options     *struct {
			AvoidFeatures []string `json:"avoid_features"`
		} `json:"options"`
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/directions/driving-car", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write(directionsPayload(t, 280450.2, 18034.7, [][]float64{
			{28.61, 77.21},
			{27.0, 76.0},
			{26.91, 75.79},
		}))
	}), nil)

	route, err := client.Route(context.Background(),
		domain.Coordinates{Lon: 77.21, Lat: 28.61},
		domain.Coordinates{Lon: 75.79, Lat: 26.91},
		ports.RouteOptions{AvoidHighways: true})
	require.NoError(t, err)

	require.Equal(t, [][]float64{{77.21, 28.61}, {75.79, 26.91}}, gotBody.Coordinates)
	require.NotNil(t, gotBody.Options)
	require.Equal(t, []string{"highways"}, gotBody.Options.AvoidFeatures)

	require.Equal(t, 280450, route.TotalDistanceMeters())
	require.Equal(t, 18035, route.TotalDurationSeconds())
	require.Len(t, route.Points, 3)
	require.InDelta(t, 28.61, route.Points[0].Lat, 1e-5)
	require.InDelta(t, 75.79, route.Points[2].Lon, 1e-5)
}

func TestORSClientRouteNoRoutes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes":[]}`))
	}), nil)

	_, err := client.Route(context.Background(),
		domain.Coordinates{Lon: 0, Lat: 0}, domain.Coordinates{Lon: 1, Lat: 0},
		ports.RouteOptions{})
	require.ErrorIs(t, err, domain.ErrRouteUnavailable)
}

func TestORSClientRouteRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(directionsPayload(t, 1000, 60, [][]float64{{0, 0}, {0, 0.01}}))
	}), nil)

	route, err := client.Route(context.Background(),
		domain.Coordinates{Lon: 0, Lat: 0}, domain.Coordinates{Lon: 0.01, Lat: 0},
		ports.RouteOptions{})
	require.NoError(t, err)
	require.Equal(t, 1000, route.TotalDistanceMeters())
	require.Equal(t, int32(2), calls.Load())
}

func TestORSClientRouteDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}), nil)

	_, err := client.Route(context.Background(),
		domain.Coordinates{Lon: 0, Lat: 0}, domain.Coordinates{Lon: 1, Lat: 0},
		ports.RouteOptions{})
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestORSClientForwardGeocode(t *testing.T) {
	cache := newMemGeocodeCache()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "/geocode/search", r.URL.Path)
		require.Equal(t, "Jaipur Rajasthan", r.URL.Query().Get("text"))
		require.Equal(t, "IN", r.URL.Query().Get("boundary.country"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{
			"geometry":{"coordinates":[75.7873,26.9124]},
			"properties":{"name":"Jaipur","locality":"Jaipur","region":"Rajasthan","label":"Jaipur, RJ, India"}
		}]}`))
	}), cache)

	// Whitespace collapses before lookup.
	addr, err := client.ForwardGeocode(context.Background(), "  Jaipur   Rajasthan ")
	require.NoError(t, err)
	require.Equal(t, "Jaipur, RJ, India", addr.FormattedAddress)
	require.InDelta(t, 75.7873, addr.Location.Lon, 1e-9)
	require.InDelta(t, 26.9124, addr.Location.Lat, 1e-9)
	require.Equal(t, 1, cache.puts)

	// Second lookup is served from the cache without touching the API.
	again, err := client.ForwardGeocode(context.Background(), "Jaipur Rajasthan")
	require.NoError(t, err)
	require.Equal(t, addr.Location, again.Location)
	require.Equal(t, int32(1), calls.Load())
}

func TestORSClientForwardGeocodeNoResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[]}`))
	}), nil)

	_, err := client.ForwardGeocode(context.Background(), "Nowhere In Particular")
	require.ErrorIs(t, err, domain.ErrGeocodeUnavailable)
}

func TestORSClientReverseGeocode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/geocode/reverse", r.URL.Path)
		require.NotEmpty(t, r.URL.Query().Get("point.lon"))
		require.NotEmpty(t, r.URL.Query().Get("point.lat"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{
			"geometry":{"coordinates":[76.2821,27.8883]},
			"properties":{"name":"NH48","locality":"Behror","region":"Rajasthan","label":"Behror, RJ, India"}
		}]}`))
	}), nil)

	place, err := client.ReverseGeocode(context.Background(), domain.Coordinates{Lon: 76.2821, Lat: 27.8883})
	require.NoError(t, err)
	require.Equal(t, "Behror", place.Name)
	require.Equal(t, "Rajasthan", place.AdminArea)
}

func TestORSClientReverseGeocodeInvalidCoordinates(t *testing.T) {
	client, err := NewORSClient("test-key", nil)
	require.NoError(t, err)

	_, err = client.ReverseGeocode(context.Background(), domain.Coordinates{Lon: 200, Lat: 95})
	require.ErrorIs(t, err, domain.ErrGeocodeUnavailable)
}
