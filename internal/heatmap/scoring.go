// internal/heatmap/scoring.go
package heatmap

import (
	"math"
	"time"
)

// Scoring constants. These fix the ranking order for every downstream
// decision, so they are not tunable.
const (
	latencyBoostThresholdMS = 100.0
	latencyBoost            = 1.5
	cacheMissBoostThreshold = 0.5
	cacheMissBoost          = 1.3
	decayHorizonHours       = 24.0
)

// heatScore computes the scalar heat of a pattern at the given instant:
// log-frequency damped by time since last access, boosted for slow or
// cache-missing patterns, scaled by success rate.
func heatScore(p *ValidationPattern, now time.Time) float64 {
	score := math.Log(float64(p.Frequency) + 1)

	hours := now.Sub(p.LastAccessed).Hours()
	if hours > 0 {
		score *= math.Exp(-hours / decayHorizonHours)
	}

	if p.AverageLatency > latencyBoostThresholdMS {
		score *= latencyBoost
	}
	if p.CacheHitRate < cacheMissBoostThreshold {
		score *= cacheMissBoost
	}

	return score * p.SuccessRate
}
