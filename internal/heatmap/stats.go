// internal/heatmap/stats.go
package heatmap

import (
	"sort"
	"time"
)

const (
	// preWarmWindow is the tactical look-ahead for ShouldPreWarm.
	preWarmWindow = 5 * time.Minute

	// preWarmHitRateCeiling: patterns already served mostly from cache
	// gain nothing from warming.
	preWarmHitRateCeiling = 0.8

	defaultHotLimit = 50
	topPatternCount = 10
)

// UsageStats is a store-wide snapshot of tracker activity.
type UsageStats struct {
	TotalValidations int64           `json:"total_validations"`
	UniquePatterns   int             `json:"unique_patterns"`
	HotPatterns      int             `json:"hot_patterns"`
	CacheEfficiency  float64         `json:"cache_efficiency"`
	AverageLatency   float64         `json:"average_latency_ms"`
	TopPatterns      []EntrySnapshot `json:"top_patterns"`
}

// UsageStats computes aggregate usage statistics. Pure read; an empty store
// yields zeroed stats.
func (t *Tracker) UsageStats() UsageStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := UsageStats{
		UniquePatterns: len(t.entries),
		TopPatterns:    make([]EntrySnapshot, 0, topPatternCount),
	}

	var weightedHits, weightedLatency float64
	snapshots := make([]EntrySnapshot, 0, len(t.entries))
	for key, e := range t.entries {
		freq := float64(e.Pattern.Frequency)
		stats.TotalValidations += e.Pattern.Frequency
		weightedHits += e.Pattern.CacheHitRate * freq
		weightedLatency += e.Pattern.AverageLatency * freq
		if e.HeatScore >= t.cfg.MinHeatScore {
			stats.HotPatterns++
		}
		snapshots = append(snapshots, snapshotEntry(key, e))
	}

	if stats.TotalValidations > 0 {
		total := float64(stats.TotalValidations)
		stats.CacheEfficiency = weightedHits / total
		stats.AverageLatency = weightedLatency / total
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].HeatScore > snapshots[j].HeatScore
	})
	if len(snapshots) > topPatternCount {
		snapshots = snapshots[:topPatternCount]
	}
	stats.TopPatterns = append(stats.TopPatterns, snapshots...)

	return stats
}

// HotPatterns lists entries at or above the hot threshold, hottest first,
// truncated to limit (default 50).
func (t *Tracker) HotPatterns(limit int) []EntrySnapshot {
	if limit <= 0 {
		limit = defaultHotLimit
	}

	t.mu.Lock()
	hot := make([]EntrySnapshot, 0, limit)
	for key, e := range t.entries {
		if e.HeatScore >= t.cfg.MinHeatScore {
			hot = append(hot, snapshotEntry(key, e))
		}
	}
	t.mu.Unlock()

	sort.Slice(hot, func(i, j int) bool {
		return hot[i].HeatScore > hot[j].HeatScore
	})
	if len(hot) > limit {
		hot = hot[:limit]
	}
	return hot
}

// PredictNextAccess estimates when a pattern will next be observed from the
// mean interval of its recorded accesses. Reports false for unknown keys or
// fewer than two recorded accesses.
func (t *Tracker) PredictNextAccess(key string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.predictLocked(key)
}

func (t *Tracker) predictLocked(key string) (time.Time, bool) {
	entry, ok := t.entries[key]
	if !ok {
		return time.Time{}, false
	}
	mean, ok := meanInterval(t.history[key])
	if !ok {
		return time.Time{}, false
	}
	return entry.Pattern.LastAccessed.Add(mean), true
}

// ShouldPreWarm is the tactical just-in-time decision: warm when a hot,
// cache-missing pattern is predicted to be requested within the look-ahead
// window (an overdue prediction counts as within it).
func (t *Tracker) ShouldPreWarm(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		return false
	}
	predicted, ok := t.predictLocked(key)
	if !ok {
		return false
	}
	if entry.HeatScore < t.cfg.MinHeatScore {
		return false
	}
	if entry.Pattern.CacheHitRate >= preWarmHitRateCeiling {
		return false
	}
	return predicted.Sub(t.now()) <= preWarmWindow
}
