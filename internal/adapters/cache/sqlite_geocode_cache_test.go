package cache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/domain"
)

func newTestSqliteCache(t *testing.T) *SqliteGeocodeCache {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repositories.InitSchema(db))
	return NewSqliteGeocodeCache(db)
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	err := c.PutMany(ctx, map[string]domain.Coordinates{
		"Jaipur, Rajasthan": {Lon: 75.7873, Lat: 26.9124},
		"Udaipur":           {Lon: 73.7125, Lat: 24.5854},
	})
	require.NoError(t, err)

	got, err := c.GetMany(ctx, []string{"Jaipur, Rajasthan", "Udaipur", "Not Cached"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.InDelta(t, 26.9124, got["Jaipur, Rajasthan"].Lat, 1e-9)

	// Re-inserting an address overwrites its coordinates.
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		"Udaipur": {Lon: 73.70, Lat: 24.58},
	}))
	got, err = c.GetMany(ctx, []string{"Udaipur"})
	require.NoError(t, err)
	require.InDelta(t, 73.70, got["Udaipur"].Lon, 1e-9)
}

func TestSqliteGeocodeCacheEmptyInputs(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	got, err := c.GetMany(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = c.GetMany(ctx, []string{"", "  "})
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, c.PutMany(ctx, nil))
	require.Error(t, c.PutMany(ctx, map[string]domain.Coordinates{"": {Lon: 1, Lat: 1}}))
}
