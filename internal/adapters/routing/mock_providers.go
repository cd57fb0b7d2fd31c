package routing

import (
	"context"
	"fmt"
	"sync"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// MockRouteProvider serves scripted routes keyed by route options.
type MockRouteProvider struct {
	mu     sync.Mutex
	routes map[ports.RouteOptions]ports.Route
	errs   map[ports.RouteOptions]error
	calls  []ports.RouteOptions
}

func NewMockRouteProvider() *MockRouteProvider {
	return &MockRouteProvider{
		routes: make(map[ports.RouteOptions]ports.Route),
		errs:   make(map[ports.RouteOptions]error),
	}
}

func (m *MockRouteProvider) SetRoute(opts ports.RouteOptions, route ports.Route) {
	m.routes[opts] = route
}

func (m *MockRouteProvider) SetError(opts ports.RouteOptions, err error) {
	m.errs[opts] = err
}

// Calls returns the options of every request served so far.
func (m *MockRouteProvider) Calls() []ports.RouteOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.RouteOptions, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockRouteProvider) Route(ctx context.Context, origin, destination domain.Coordinates, opts ports.RouteOptions) (ports.Route, error) {
	m.mu.Lock()
	m.calls = append(m.calls, opts)
	m.mu.Unlock()

	if err, ok := m.errs[opts]; ok {
		return ports.Route{}, err
	}
	if r, ok := m.routes[opts]; ok {
		return r, nil
	}
	return ports.Route{}, fmt.Errorf("mock route provider: no route scripted for %+v", opts)
}

// MockGeocoder serves scripted geocoding results.
type MockGeocoder struct {
	Forward map[string]ports.GeocodedAddress
	// Reverse maps "lat,lon" keys rounded to 4 decimals to place results.
	Reverse map[string]ports.Place
	// FailReverse makes every reverse lookup fail, exercising fallback naming.
	FailReverse bool
}

func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		Forward: make(map[string]ports.GeocodedAddress),
		Reverse: make(map[string]ports.Place),
	}
}

// ReverseKey builds the lookup key used by MockGeocoder.Reverse.
func ReverseKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

func (m *MockGeocoder) ForwardGeocode(ctx context.Context, text string) (ports.GeocodedAddress, error) {
	if a, ok := m.Forward[text]; ok {
		return a, nil
	}
	return ports.GeocodedAddress{}, fmt.Errorf("mock geocoder: no result for %q: %w", text, domain.ErrGeocodeUnavailable)
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, c domain.Coordinates) (ports.Place, error) {
	if m.FailReverse {
		return ports.Place{}, fmt.Errorf("mock geocoder: reverse disabled: %w", domain.ErrGeocodeUnavailable)
	}
	if p, ok := m.Reverse[ReverseKey(c)]; ok {
		return p, nil
	}
	return ports.Place{}, fmt.Errorf("mock geocoder: no reverse result: %w", domain.ErrGeocodeUnavailable)
}
