package services

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"ev-route-service/internal/domain"
)

func TestNormalizePlaceName(t *testing.T) {
	require.Equal(t, "behror", normalizePlaceName("Behror (NH48)"))
	require.Equal(t, "amber fort", normalizePlaceName("The Amber Fort"))
	require.Equal(t, "ganga", normalizePlaceName("Ganga Nagar"))

	// Suffix variants of the same locality collapse to one key.
	require.Equal(t, normalizePlaceName("Jaipur"), normalizePlaceName("Jaipur City"))
	require.Equal(t, normalizePlaceName("kishangarh"), normalizePlaceName("Kishangarh Town"))

	// A name that is nothing but a suffix keeps its last form non-empty.
	require.NotEqual(t, "", normalizePlaceName("Nagar"))
}

func TestDedupeCandidates(t *testing.T) {
	pool := []domain.CandidateWaypoint{
		{ID: "settlement:0", Name: "Ram Nagar", Source: domain.SourceGeocodedSettlement, DistanceAlongKm: 50},
		{ID: "station:rn", Name: "Ram Nagar", Source: domain.SourceRegisteredStation, DistanceAlongKm: 52},
		{ID: "settlement:1", Name: "ram nagar", Source: domain.SourceGeocodedSettlement, DistanceAlongKm: 55},
		{ID: "landmark:fort-chowk", Name: "Fort Chowk", Source: domain.SourceLandmark, DistanceAlongKm: 80},
		{ID: "settlement:2", Name: "fort chowk", Source: domain.SourceGeocodedSettlement, DistanceAlongKm: 90},
	}

	kept := dedupeCandidates(pool)
	require.Len(t, kept, 2)

	// The registered station displaces the synthetic entry seen first.
	require.Equal(t, "station:rn", kept[0].ID)
	require.Equal(t, "landmark:fort-chowk", kept[1].ID)

	// Output is ordered by distance along the route.
	require.True(t, sort.SliceIsSorted(kept, func(i, j int) bool {
		return kept[i].DistanceAlongKm < kept[j].DistanceAlongKm
	}))

	// Deduplication is idempotent.
	require.Equal(t, kept, dedupeCandidates(kept))
}

func TestTargetStopCount(t *testing.T) {
	cfg := DefaultPlannerConfig()

	require.Equal(t, 8, targetStopCount(100, cfg))  // short trip clamps up
	require.Equal(t, 10, targetStopCount(250, cfg)) // one stop per 25 km
	require.Equal(t, 12, targetStopCount(300, cfg))
	require.Equal(t, 12, targetStopCount(1000, cfg)) // long trip clamps down
}

func TestDownsampleSpacing(t *testing.T) {
	cfg := DefaultPlannerConfig()

	// 20 candidates every 10 km on a 300 km route.
	sorted := make([]domain.CandidateWaypoint, 0, 20)
	for i := 0; i < 20; i++ {
		sorted = append(sorted, domain.CandidateWaypoint{
			ID:              fmt.Sprintf("settlement:%d", i),
			Name:            fmt.Sprintf("Place %d", i),
			Source:          domain.SourceGeocodedSettlement,
			DistanceAlongKm: float64(i+1) * 10,
		})
	}

	selected := downsampleCandidates(sorted, 300, cfg)

	require.NotEmpty(t, selected)
	require.LessOrEqual(t, len(selected), targetStopCount(300, cfg))
	require.GreaterOrEqual(t, len(selected), cfg.MinStops)

	// Greedy pass keeps at least half the ideal spacing between neighbors.
	minSpacingKm := 300.0 / float64(targetStopCount(300, cfg)+1)
	for i := 1; i < len(selected); i++ {
		gap := selected[i].DistanceAlongKm - selected[i-1].DistanceAlongKm
		require.GreaterOrEqual(t, gap, 0.5*minSpacingKm)
	}
}

func TestDownsampleFillsFromClusteredCandidates(t *testing.T) {
	cfg := DefaultPlannerConfig()

	// All candidates bunched within 10 km; the spacing pass alone would keep one.
	sorted := make([]domain.CandidateWaypoint, 0, 10)
	for i := 0; i < 10; i++ {
		sorted = append(sorted, domain.CandidateWaypoint{
			ID:              fmt.Sprintf("settlement:%d", i),
			Name:            fmt.Sprintf("Cluster %d", i),
			Source:          domain.SourceGeocodedSettlement,
			DistanceAlongKm: 100 + float64(i),
		})
	}

	selected := downsampleCandidates(sorted, 300, cfg)
	require.Len(t, selected, 10)

	require.True(t, sort.SliceIsSorted(selected, func(i, j int) bool {
		return selected[i].DistanceAlongKm < selected[j].DistanceAlongKm
	}))
}

func TestDownsampleEmptyInput(t *testing.T) {
	require.Empty(t, downsampleCandidates(nil, 300, DefaultPlannerConfig()))
}
