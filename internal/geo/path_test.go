package geo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ev-route-service/internal/domain"
)

// One degree of longitude on the equator is about 111.2 km.
func TestHaversineKnownDistance(t *testing.T) {
	d := Haversine(0, 0, 0, 1)
	require.InDelta(t, 111195, d, 10)

	require.Zero(t, Haversine(26.91, 75.79, 26.91, 75.79))
}

func TestPointToSegmentRatio(t *testing.T) {
	// Point above the middle of an equatorial segment projects to its midpoint.
	t.Run("midpoint", func(t *testing.T) {
		tr := PointToSegmentRatio(0.1, 0.5, 0, 0, 0, 1)
		require.InDelta(t, 0.5, tr, 1e-9)
	})

	t.Run("clamped to endpoints", func(t *testing.T) {
		require.Equal(t, 0.0, PointToSegmentRatio(0, -5, 0, 0, 0, 1))
		require.Equal(t, 1.0, PointToSegmentRatio(0, 5, 0, 0, 0, 1))
	})

	t.Run("degenerate segment", func(t *testing.T) {
		require.Equal(t, 0.0, PointToSegmentRatio(1, 1, 0, 0, 0, 0))
	})
}

func TestNewPathCumulativeTable(t *testing.T) {
	_, err := NewPath([]domain.Coordinates{{Lon: 0, Lat: 0}})
	require.Error(t, err)

	p, err := NewPath([]domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0.5, Lat: 0},
		{Lon: 1.0, Lat: 0},
	})
	require.NoError(t, err)

	require.Zero(t, p.CumulativeMeters(0))
	require.Less(t, p.CumulativeMeters(0), p.CumulativeMeters(1))
	require.Less(t, p.CumulativeMeters(1), p.CumulativeMeters(2))
	require.Equal(t, p.CumulativeMeters(2), p.TotalMeters())
	require.InDelta(t, 111195, p.TotalMeters(), 50)
	require.InDelta(t, 111.195, p.TotalKm(), 0.05)
}

func TestProjectOnVertex(t *testing.T) {
	p, err := NewPath([]domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0.5, Lat: 0},
		{Lon: 1.0, Lat: 0},
	})
	require.NoError(t, err)

	idx, perp := p.Project(domain.Coordinates{Lon: 0.5, Lat: 0})
	require.Equal(t, 1, idx)
	require.Less(t, perp, 1.0)
}

func TestProjectOffRoute(t *testing.T) {
	p, err := NewPath([]domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0.5, Lat: 0},
		{Lon: 1.0, Lat: 0},
	})
	require.NoError(t, err)

	// 0.1 degrees of latitude north of the midpoint, roughly 11.1 km away.
	idx, perp := p.Project(domain.Coordinates{Lon: 0.5, Lat: 0.1})
	require.Equal(t, 1, idx)
	require.InDelta(t, 11120, perp, 50)
}

func TestSampleEvery(t *testing.T) {
	p, err := NewPath([]domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0.5, Lat: 0},
		{Lon: 1.0, Lat: 0},
	})
	require.NoError(t, err)

	samples := p.SampleEvery(30000, 10)
	require.Len(t, samples, 3)

	for i, s := range samples {
		require.Equal(t, i, s.Index)
		require.InDelta(t, float64(i+1)*30000, s.AlongMeters, 1e-6)
		require.InDelta(t, 0, s.Location.Lat, 1e-9)
	}

	// The first sample sits 30 km in, a bit past a quarter of the path.
	require.InDelta(t, 0.27, samples[0].Location.Lon, 0.01)
}

func TestSampleEveryDegenerateInputs(t *testing.T) {
	p, err := NewPath([]domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0.5, Lat: 0},
	})
	require.NoError(t, err)

	require.Empty(t, p.SampleEvery(200000, 10))
	require.Empty(t, p.SampleEvery(0, 10))
	require.Empty(t, p.SampleEvery(10000, 0))

	// Cap limits the sample count even when the path has room for more.
	require.Len(t, p.SampleEvery(10000, 2), 2)
}

func TestBounds(t *testing.T) {
	p, err := NewPath([]domain.Coordinates{
		{Lon: 75.8, Lat: 26.9},
		{Lon: 73.7, Lat: 24.6},
		{Lon: 72.9, Lat: 20.4},
	})
	require.NoError(t, err)

	minLat, minLon, maxLat, maxLon := p.Bounds()
	require.Equal(t, 20.4, minLat)
	require.Equal(t, 72.9, minLon)
	require.Equal(t, 26.9, maxLat)
	require.Equal(t, 75.8, maxLon)
}
