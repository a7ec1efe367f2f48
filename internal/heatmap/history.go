// internal/heatmap/history.go
package heatmap

import "time"

const (
	// maxHistoryPerPattern bounds the per-key access ledger.
	maxHistoryPerPattern = 100

	// trendWindow is how many recent accesses feed trend classification.
	trendWindow = 10

	// Relative interval cutoffs separating rising/declining from stable.
	trendRisingRatio    = 0.8
	trendDecliningRatio = 1.2
)

// appendAccess appends a timestamp to a bounded access ledger, dropping the
// oldest entries once the bound is exceeded.
func appendAccess(history []time.Time, ts time.Time) []time.Time {
	history = append(history, ts)
	if len(history) > maxHistoryPerPattern {
		history = history[len(history)-maxHistoryPerPattern:]
	}
	return history
}

// meanInterval returns the average gap between consecutive recorded
// accesses. Needs at least two timestamps.
func meanInterval(history []time.Time) (time.Duration, bool) {
	if len(history) < 2 {
		return 0, false
	}
	// Consecutive intervals telescope to last-first.
	span := history[len(history)-1].Sub(history[0])
	return span / time.Duration(len(history)-1), true
}

// classifyTrend compares the most recent access interval against the mean
// of the recent intervals: a markedly shorter gap means the pattern is
// heating up, a markedly longer one means it is cooling off.
func classifyTrend(history []time.Time) Trend {
	if len(history) < 3 {
		return TrendStable
	}

	recent := history
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	var sum time.Duration
	for i := 1; i < len(recent); i++ {
		sum += recent[i].Sub(recent[i-1])
	}
	mean := float64(sum) / float64(len(recent)-1)
	last := float64(recent[len(recent)-1].Sub(recent[len(recent)-2]))

	switch {
	case last < trendRisingRatio*mean:
		return TrendRising
	case last > trendDecliningRatio*mean:
		return TrendDeclining
	default:
		return TrendStable
	}
}
