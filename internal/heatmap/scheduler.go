// internal/heatmap/scheduler.go
package heatmap

import (
	"time"

	"github.com/warmforge/warmgate/internal/events"
	"go.uber.org/zap"
)

// Pre-warm candidacy cutoffs, applied during aggregation.
const (
	candidateHitRateCeiling = 0.8
	candidateMinLatencyMS   = 50.0
)

// decayInterval gates the multiplicative decay pass: aggregation may run
// far more often, decay stays hourly.
const decayInterval = time.Hour

// StartScheduler launches the periodic aggregation pass. A no-op when
// tracking is disabled or the scheduler is already running.
func (t *Tracker) StartScheduler() {
	if !t.cfg.Enabled {
		return
	}

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.done = make(chan struct{})
	done := t.done
	t.mu.Unlock()

	t.logger.Info("heatmap scheduler started",
		zap.Duration("interval", t.cfg.AggregationInterval))

	go t.schedulerLoop(done)
}

// StopScheduler stops the periodic pass. Idempotent; safe when never
// started.
func (t *Tracker) StopScheduler() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.done)
}

func (t *Tracker) schedulerLoop(done <-chan struct{}) {
	ticker := time.NewTicker(t.cfg.AggregationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.runAggregation()
		case <-done:
			t.logger.Info("heatmap scheduler stopped")
			return
		}
	}
}

// runAggregation performs one scheduler pass: emit aggregate stats, apply
// hourly decay, refresh trends and predictions, and re-evaluate pre-warm
// candidacy.
func (t *Tracker) runAggregation() {
	stats := t.UsageStats()

	now := t.now()
	var decayed bool
	var candidates int

	t.mu.Lock()
	if now.Sub(t.lastDecay) >= decayInterval {
		for _, e := range t.entries {
			e.HeatScore *= t.cfg.DecayFactor
		}
		t.lastDecay = now
		decayed = true
	}

	for key, e := range t.entries {
		hist := t.history[key]
		if len(hist) >= 3 {
			e.Trend = classifyTrend(hist)
		}
		if mean, ok := meanInterval(hist); ok {
			e.PredictedNextAccess = e.Pattern.LastAccessed.Add(mean)
		}

		e.PreWarmingCandidate = e.HeatScore >= t.cfg.MinHeatScore &&
			e.Pattern.CacheHitRate < candidateHitRateCeiling &&
			e.Pattern.AverageLatency > candidateMinLatencyMS &&
			e.Trend != TrendDeclining
		if e.PreWarmingCandidate {
			candidates++
		}
	}
	t.mu.Unlock()

	t.metrics.SetHotPatterns(stats.HotPatterns)
	t.metrics.SetPreWarmCandidates(candidates)

	t.emitter.Emit(events.Event{
		Type: events.TypeAggregationComplete,
		Data: map[string]interface{}{
			"total_validations": stats.TotalValidations,
			"unique_patterns":   stats.UniquePatterns,
			"hot_patterns":      stats.HotPatterns,
			"cache_efficiency":  stats.CacheEfficiency,
			"average_latency":   stats.AverageLatency,
		},
	})

	if decayed {
		t.metrics.ObserveDecayPass()
		t.emitter.Emit(events.Event{
			Type: events.TypeDecayApplied,
			Data: map[string]interface{}{
				"factor":   t.cfg.DecayFactor,
				"patterns": stats.UniquePatterns,
			},
		})
	}

	t.logger.Debug("aggregation pass complete",
		zap.Int("patterns", stats.UniquePatterns),
		zap.Int("hot", stats.HotPatterns),
		zap.Int("prewarm_candidates", candidates),
		zap.Bool("decayed", decayed))
}
