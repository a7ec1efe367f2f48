// internal/heatmap/tracker.go
package heatmap

import (
	"sort"
	"sync"
	"time"

	"github.com/warmforge/warmgate/internal/events"
	"github.com/warmforge/warmgate/internal/metrics"
	"go.uber.org/zap"
)

// evictionFraction of the store is dropped (at least one entry) whenever an
// insert pushes it over capacity.
const evictionFraction = 10 // one tenth

// Config fixes tracker behavior at construction. No runtime reconfiguration.
type Config struct {
	Enabled             bool          `json:"enabled"`
	MaxEntries          int           `json:"max_entries"`
	DecayFactor         float64       `json:"decay_factor"`
	MinHeatScore        float64       `json:"min_heat_score"`
	AggregationInterval time.Duration `json:"aggregation_interval"`

	// Persist is a reserved hook; the tracker itself never writes state.
	Persist bool `json:"persist"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:             true,
		MaxEntries:          10000,
		DecayFactor:         0.95,
		MinHeatScore:        1.0,
		AggregationInterval: 5 * time.Minute,
	}
}

// Tracker maintains decaying heat state for every distinct validation
// pattern it observes and advises which patterns deserve pre-warming.
//
// One mutex guards both maps: recording is a read-modify-write over the
// pattern's running averages and must apply atomically, and the scheduler's
// periodic pass iterates the whole store.
type Tracker struct {
	cfg     Config
	logger  *zap.Logger
	emitter *events.Emitter
	metrics *metrics.Metrics

	mu      sync.Mutex
	entries map[string]*Entry
	history map[string][]time.Time

	lastDecay time.Time
	running   bool
	done      chan struct{}

	nowFunc func() time.Time // injectable clock for testing
}

// New creates a tracker. The emitter and metrics may be nil; the scheduler
// is not started until StartScheduler.
func New(cfg Config, logger *zap.Logger, emitter *events.Emitter, m *metrics.Metrics) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultConfig().MaxEntries
	}
	if cfg.DecayFactor <= 0 || cfg.DecayFactor > 1 {
		cfg.DecayFactor = DefaultConfig().DecayFactor
	}
	if cfg.AggregationInterval <= 0 {
		cfg.AggregationInterval = DefaultConfig().AggregationInterval
	}
	if cfg.Persist {
		logger.Info("heatmap persistence requested but not implemented, ignoring")
	}

	return &Tracker{
		cfg:       cfg,
		logger:    logger,
		emitter:   emitter,
		metrics:   m,
		entries:   make(map[string]*Entry),
		history:   make(map[string][]time.Time),
		lastDecay: time.Now(),
		nowFunc:   time.Now,
	}
}

// Config returns the immutable tracker configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

func (t *Tracker) now() time.Time {
	return t.nowFunc()
}

// RecordValidation records one completed validation observation. It never
// fails: when tracking is disabled it is a no-op, and event emission is
// fire-and-forget.
func (t *Tracker) RecordValidation(layers []string, inputHash, policyVersion string, latencyMS float64, success, cacheHit bool) {
	if !t.cfg.Enabled {
		return
	}

	pipelineID := PipelineID(layers, policyVersion)
	key := PatternKey(pipelineID, inputHash)
	now := t.now()

	t.mu.Lock()
	entry, exists := t.entries[key]
	if exists {
		p := entry.Pattern
		n := float64(p.Frequency)
		p.AverageLatency = (p.AverageLatency*n + latencyMS) / (n + 1)
		p.SuccessRate = (p.SuccessRate*n + boolToRate(success)) / (n + 1)
		p.CacheHitRate = (p.CacheHitRate*n + boolToRate(cacheHit)) / (n + 1)
		p.Frequency++
		p.LastAccessed = now
	} else {
		entry = &Entry{
			Pattern: &ValidationPattern{
				PipelineID:     pipelineID,
				Layers:         append([]string(nil), layers...),
				InputHash:      inputHash,
				PolicyVersion:  policyVersion,
				Frequency:      1,
				LastAccessed:   now,
				AverageLatency: latencyMS,
				SuccessRate:    boolToRate(success),
				CacheHitRate:   boolToRate(cacheHit),
			},
			Trend: TrendStable,
		}
		t.entries[key] = entry
	}

	// Recompute immediately so reads between aggregation cycles see the
	// latest write.
	entry.HeatScore = heatScore(entry.Pattern, now)
	t.history[key] = appendAccess(t.history[key], now)

	var evicted int
	if !exists && len(t.entries) > t.cfg.MaxEntries {
		evicted = t.evictColdestLocked()
	}
	size := len(t.entries)
	t.mu.Unlock()

	t.metrics.ObserveValidation(success, cacheHit)
	t.metrics.SetLivePatterns(size)

	if evicted > 0 {
		t.metrics.ObserveEviction(evicted)
		t.emitter.Emit(events.Event{
			Type: events.TypeCleanupPerformed,
			Data: map[string]interface{}{
				"removed":   evicted,
				"remaining": size,
			},
		})
	}

	t.emitter.Emit(events.Event{
		Type:       events.TypeValidationTracked,
		PatternKey: key,
		PipelineID: pipelineID,
		Data: map[string]interface{}{
			"latency_ms": latencyMS,
			"success":    success,
			"cache_hit":  cacheHit,
		},
	})
}

// evictColdestLocked removes the lowest-scoring tenth of the store (at
// least one entry), pattern and access history together. Caller holds the
// lock.
func (t *Tracker) evictColdestLocked() int {
	type scored struct {
		key   string
		score float64
	}
	all := make([]scored, 0, len(t.entries))
	for k, e := range t.entries {
		all = append(all, scored{key: k, score: e.HeatScore})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].score < all[j].score })

	n := len(all) / evictionFraction
	if n < 1 {
		n = 1
	}
	for _, s := range all[:n] {
		delete(t.entries, s.key)
		delete(t.history, s.key)
	}

	t.logger.Info("evicted cold patterns",
		zap.Int("removed", n),
		zap.Int("remaining", len(t.entries)))
	return n
}

// Clear wipes all patterns and access history. The only full reset besides
// process restart.
func (t *Tracker) Clear() {
	t.mu.Lock()
	cleared := len(t.entries)
	t.entries = make(map[string]*Entry)
	t.history = make(map[string][]time.Time)
	t.mu.Unlock()

	t.metrics.SetLivePatterns(0)
	t.emitter.Emit(events.Event{
		Type: events.TypeHeatmapCleared,
		Data: map[string]interface{}{"cleared": cleared},
	})
	t.logger.Info("heatmap cleared", zap.Int("patterns", cleared))
}

func boolToRate(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
