package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name     string `json:"name"`
			Locality string `json:"locality"`
			Region   string `json:"region"`
			Label    string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// ForwardGeocode resolves free-text input via /geocode/search, consulting the
// persistent geocode cache first.
func (o *ORSClient) ForwardGeocode(ctx context.Context, text string) (_ ports.GeocodedAddress, err error) {
	defer obs.Time(ctx, "ors.ForwardGeocode")(&err)

	norm := o.normalize(text)
	if norm == "" {
		return ports.GeocodedAddress{}, fmt.Errorf("forward geocode: empty input: %w", domain.ErrGeocodeUnavailable)
	}

	if o.geocodeCache != nil {
		hits, err := o.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if c, ok := hits[norm]; ok {
			return ports.GeocodedAddress{Location: c, FormattedAddress: norm}, nil
		}
	}

	decoded, err := o.geocodeQuery(ctx, "/geocode/search", url.Values{
		"text":             []string{norm},
		"boundary.country": []string{o.countryCode},
		"size":             []string{"1"},
	})
	if err != nil {
		return ports.GeocodedAddress{}, fmt.Errorf("forward geocode %q: %w: %v", norm, domain.ErrGeocodeUnavailable, err)
	}

	if len(decoded.Features) == 0 {
		return ports.GeocodedAddress{}, fmt.Errorf("forward geocode: no results for %q: %w", norm, domain.ErrGeocodeUnavailable)
	}

	feature := decoded.Features[0]
	coords := feature.Geometry.Coordinates
	if len(coords) != 2 {
		return ports.GeocodedAddress{}, fmt.Errorf("forward geocode: invalid coordinate format for %q: %w", norm, domain.ErrGeocodeUnavailable)
	}

	loc := domain.Coordinates{Lon: coords[0], Lat: coords[1]}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{norm: loc}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	formatted := feature.Properties.Label
	if formatted == "" {
		formatted = norm
	}

	return ports.GeocodedAddress{Location: loc, FormattedAddress: formatted}, nil
}

// ReverseGeocode resolves a coordinate to a place name via /geocode/reverse.
// Results are not cached: callers absorb failures with fallback naming, and
// sampled coordinates rarely repeat across runs.
func (o *ORSClient) ReverseGeocode(ctx context.Context, c domain.Coordinates) (_ ports.Place, err error) {
	defer obs.Time(ctx, "ors.ReverseGeocode")(&err)

	if !c.Valid() {
		return ports.Place{}, fmt.Errorf("reverse geocode: invalid coordinates: %w", domain.ErrGeocodeUnavailable)
	}

	decoded, err := o.geocodeQuery(ctx, "/geocode/reverse", url.Values{
		"point.lon": []string{strconv.FormatFloat(c.Lon, 'f', 6, 64)},
		"point.lat": []string{strconv.FormatFloat(c.Lat, 'f', 6, 64)},
		"size":      []string{"1"},
	})
	if err != nil {
		return ports.Place{}, fmt.Errorf("reverse geocode: %w: %v", domain.ErrGeocodeUnavailable, err)
	}

	if len(decoded.Features) == 0 {
		return ports.Place{}, fmt.Errorf("reverse geocode: no results: %w", domain.ErrGeocodeUnavailable)
	}

	props := decoded.Features[0].Properties
	name := props.Locality
	if name == "" {
		name = props.Name
	}

	return ports.Place{Name: name, AdminArea: props.Region}, nil
}

func (o *ORSClient) geocodeQuery(ctx context.Context, path string, params url.Values) (*geocodeResponse, error) {
	endpoint := o.baseURL + path

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.URL.RawQuery = params.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	return &decoded, nil
}
