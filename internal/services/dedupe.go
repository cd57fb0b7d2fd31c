package services

import (
	"sort"
	"strings"

	"ev-route-service/internal/domain"
)

// Trailing locality suffixes stripped during name normalization so that
// "Jaipur City" and "jaipur" collapse to one key.
var localitySuffixes = []string{
	"city", "town", "village", "nagar", "pur", "garh", "pura",
	"chowk", "road", "market", "division", "district", "state", "india",
}

// normalizePlaceName reduces a display name to a deduplication key:
// lowercase, bracketed annotations removed, a leading "the" dropped, and
// trailing locality suffixes stripped.
func normalizePlaceName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	if i := strings.IndexByte(s, '('); i >= 0 {
		if j := strings.IndexByte(s[i:], ')'); j >= 0 {
			s = s[:i] + s[i+j+1:]
		} else {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	s = strings.TrimSpace(strings.TrimPrefix(s, "the "))

	for _, suffix := range localitySuffixes {
		if trimmed, ok := strings.CutSuffix(s, " "+suffix); ok {
			s = strings.TrimSpace(trimmed)
			continue
		}
		if trimmed, ok := strings.CutSuffix(s, suffix); ok && trimmed != "" {
			s = strings.TrimSpace(trimmed)
		}
	}

	return s
}

// dedupeCandidates collapses candidates sharing a normalized name.
// Within a duplicate group a registered station always beats synthetic
// entries; among equals the first-encountered member wins. Output is
// sorted by distance along the route.
func dedupeCandidates(pool []domain.CandidateWaypoint) []domain.CandidateWaypoint {
	kept := make([]domain.CandidateWaypoint, 0, len(pool))
	slot := make(map[string]int, len(pool))

	for _, c := range pool {
		key := normalizePlaceName(c.Name)
		if key == "" {
			key = strings.ToLower(c.Name)
		}

		j, seen := slot[key]
		if !seen {
			slot[key] = len(kept)
			kept = append(kept, c)
			continue
		}

		// A station displaces a synthetic holder; anything else is dropped.
		if c.Source == domain.SourceRegisteredStation && kept[j].Source != domain.SourceRegisteredStation {
			kept[j] = c
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].DistanceAlongKm < kept[j].DistanceAlongKm
	})

	return kept
}

// targetStopCount derives how many stops a route of the given length should
// present: one stop per KmPerStop kilometers, clamped to [MinStops, MaxStops].
func targetStopCount(totalKm float64, cfg PlannerConfig) int {
	n := int(totalKm / cfg.KmPerStop)
	if n < cfg.MinStops {
		n = cfg.MinStops
	}
	if n > cfg.MaxStops {
		n = cfg.MaxStops
	}
	return n
}

// downsampleCandidates thins a distance-sorted candidate list to the target
// cardinality.
//
// Pass 1 greedily accepts candidates spaced at least half the ideal spacing
// apart. Pass 2 runs only when pass 1 fell short of min(MinStops, target)
// and tops up from the remaining candidates ignoring spacing. The result is
// re-sorted by distance.
func downsampleCandidates(sorted []domain.CandidateWaypoint, totalKm float64, cfg PlannerConfig) []domain.CandidateWaypoint {
	target := targetStopCount(totalKm, cfg)
	minSpacingKm := totalKm / float64(target+1)

	accepted := make([]domain.CandidateWaypoint, 0, target)
	taken := make(map[string]bool, target)

	lastKm := 0.0
	for _, c := range sorted {
		if len(accepted) >= target {
			break
		}
		if len(accepted) > 0 && c.DistanceAlongKm-lastKm < 0.5*minSpacingKm {
			continue
		}
		accepted = append(accepted, c)
		taken[c.ID] = true
		lastKm = c.DistanceAlongKm
	}

	floor := cfg.MinStops
	if target < floor {
		floor = target
	}

	if len(accepted) < floor {
		for _, c := range sorted {
			if len(accepted) >= target {
				break
			}
			if taken[c.ID] {
				continue
			}
			accepted = append(accepted, c)
			taken[c.ID] = true
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].DistanceAlongKm < accepted[j].DistanceAlongKm
	})

	return accepted
}
