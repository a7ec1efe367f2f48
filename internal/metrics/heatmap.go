// internal/metrics/heatmap.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the heat tracker. Each instance
// owns its registry so tests can construct freely without duplicate
// registration.
type Metrics struct {
	Validations       *prometheus.CounterVec
	PatternsLive      prometheus.Gauge
	PatternsHot       prometheus.Gauge
	PreWarmCandidates prometheus.Gauge
	EvictionRuns      prometheus.Counter
	EvictedPatterns   prometheus.Counter
	DecayPasses       prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers all tracker metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warmgate_validations_total",
				Help: "Total validation observations recorded",
			},
			[]string{"result", "cache"},
		),
		PatternsLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warmgate_patterns_live",
			Help: "Distinct validation patterns currently tracked",
		}),
		PatternsHot: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warmgate_patterns_hot",
			Help: "Patterns at or above the hot heat threshold",
		}),
		PreWarmCandidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warmgate_prewarm_candidates",
			Help: "Patterns currently flagged as pre-warming candidates",
		}),
		EvictionRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warmgate_eviction_runs_total",
			Help: "Capacity eviction passes executed",
		}),
		EvictedPatterns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warmgate_evicted_patterns_total",
			Help: "Patterns removed by capacity eviction",
		}),
		DecayPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warmgate_decay_passes_total",
			Help: "Hourly decay passes applied to the store",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.Validations,
		m.PatternsLive,
		m.PatternsHot,
		m.PreWarmCandidates,
		m.EvictionRuns,
		m.EvictedPatterns,
		m.DecayPasses,
	)

	return m
}

// Registry exposes the instance registry for a promhttp handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveValidation counts one recorded observation.
func (m *Metrics) ObserveValidation(success, cacheHit bool) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	m.Validations.WithLabelValues(result, cache).Inc()
}

// SetLivePatterns records the current store size.
func (m *Metrics) SetLivePatterns(n int) {
	if m == nil {
		return
	}
	m.PatternsLive.Set(float64(n))
}

// SetHotPatterns records the current hot-pattern count.
func (m *Metrics) SetHotPatterns(n int) {
	if m == nil {
		return
	}
	m.PatternsHot.Set(float64(n))
}

// SetPreWarmCandidates records the current candidate count.
func (m *Metrics) SetPreWarmCandidates(n int) {
	if m == nil {
		return
	}
	m.PreWarmCandidates.Set(float64(n))
}

// ObserveEviction counts one eviction pass and its removed patterns.
func (m *Metrics) ObserveEviction(removed int) {
	if m == nil {
		return
	}
	m.EvictionRuns.Inc()
	m.EvictedPatterns.Add(float64(removed))
}

// ObserveDecayPass counts one hourly decay pass.
func (m *Metrics) ObserveDecayPass() {
	if m == nil {
		return
	}
	m.DecayPasses.Inc()
}
