package routing

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ev-route-service/internal/ports"
)

// ORSClient implements the RouteProvider and Geocoder ports using
// OpenRouteService.
//
// It coordinates:
//   - Directions requests with polyline geometry decoding
//   - Forward and reverse geocoding
//   - Persistent geocode caching for forward lookups
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type ORSClient struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	countryCode  string
	geocodeCache ports.GeocodeCache
}

func NewORSClient(apiKey string, geocodeCache ports.GeocodeCache) (*ORSClient, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	client := &ORSClient{
		session:      &http.Client{Timeout: 15 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "driving-car",
		countryCode:  "IN",
		geocodeCache: geocodeCache,
	}

	return client, nil
}

// SetBaseURL overrides the API endpoint, primarily for tests.
func (o *ORSClient) SetBaseURL(u string) { o.baseURL = strings.TrimRight(u, "/") }

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSClient) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
