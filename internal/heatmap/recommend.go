// internal/heatmap/recommend.go
package heatmap

import (
	"sort"
	"strings"
)

// Priority ranks a recommendation's urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Action is what the consumer should do about a recommended pattern.
type Action string

const (
	ActionCache Action = "cache"
	ActionPool  Action = "pool"
	ActionBoth  Action = "both"
)

// Recommendation is one prioritized, justified pre-warming suggestion.
type Recommendation struct {
	PatternKey       string   `json:"pattern_key"`
	PipelineID       string   `json:"pipeline_id"`
	Priority         Priority `json:"priority"`
	Action           Action   `json:"recommended_action"`
	EstimatedBenefit float64  `json:"estimated_benefit"`
	ResourceCost     float64  `json:"resource_cost"`
	HeatScore        float64  `json:"heat_score"`
	Reasoning        string   `json:"reasoning"`
}

// Benefit/cost model constants. Frequency and latency are normalized
// against fixed reference scales; per-layer costs are points out of 100.
const (
	maxRecommendations = 20

	benefitScale          = 100.0
	frequencyWeight       = 0.4
	latencyWeight         = 0.4
	cacheMissWeight       = 0.2
	frequencyNormalizer   = 100.0
	latencyNormalizerMS   = 1000.0
	baseCostPerLayer      = 10.0
	consentLayerSurcharge = 20.0
	auditLayerSurcharge   = 30.0
	sandboxLayerSurcharge = 50.0
	maxResourceCost       = 100.0

	priorityHighFactor   = 3.0
	priorityMediumFactor = 1.5
)

// PreWarmingRecommendations converts the current pre-warming candidates
// into a prioritized report, hottest candidates first, capped at 20,
// finally ordered by priority-weighted estimated benefit.
func (t *Tracker) PreWarmingRecommendations() []Recommendation {
	t.mu.Lock()
	candidates := make([]EntrySnapshot, 0)
	for key, e := range t.entries {
		if e.PreWarmingCandidate {
			candidates = append(candidates, snapshotEntry(key, e))
		}
	}
	minHeat := t.cfg.MinHeatScore
	t.mu.Unlock()

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].HeatScore > candidates[j].HeatScore
	})
	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recs = append(recs, buildRecommendation(c, minHeat))
	}

	sort.Slice(recs, func(i, j int) bool {
		return priorityWeight(recs[i].Priority)*recs[i].EstimatedBenefit >
			priorityWeight(recs[j].Priority)*recs[j].EstimatedBenefit
	})

	return recs
}

func buildRecommendation(c EntrySnapshot, minHeat float64) Recommendation {
	p := c.Pattern

	freqNorm := float64(p.Frequency) / frequencyNormalizer
	if freqNorm > 1 {
		freqNorm = 1
	}
	latNorm := p.AverageLatency / latencyNormalizerMS
	if latNorm > 1 {
		latNorm = 1
	}
	benefit := benefitScale * (frequencyWeight*freqNorm +
		latencyWeight*latNorm +
		cacheMissWeight*(1-p.CacheHitRate))

	priority := PriorityLow
	switch {
	case c.HeatScore > priorityHighFactor*minHeat:
		priority = PriorityHigh
	case c.HeatScore > priorityMediumFactor*minHeat:
		priority = PriorityMedium
	}

	action := ActionCache
	if hasSandboxLayer(p.Layers) {
		if p.CacheHitRate < cacheMissBoostThreshold {
			action = ActionBoth
		} else {
			action = ActionPool
		}
	}

	return Recommendation{
		PatternKey:       c.Key,
		PipelineID:       p.PipelineID,
		Priority:         priority,
		Action:           action,
		EstimatedBenefit: benefit,
		ResourceCost:     resourceCost(p.Layers),
		HeatScore:        c.HeatScore,
		Reasoning:        reasoning(&p, c.Trend),
	}
}

// resourceCost estimates pre-warming cost from the pipeline shape: a flat
// cost per layer plus surcharges for the expensive layer families.
func resourceCost(layers []string) float64 {
	cost := baseCostPerLayer * float64(len(layers))
	for _, layer := range layers {
		l := strings.ToLower(layer)
		switch {
		case strings.Contains(l, "execute") || strings.Contains(l, "sandbox"):
			cost += sandboxLayerSurcharge
		case strings.Contains(l, "audit") || strings.Contains(l, "security"):
			cost += auditLayerSurcharge
		case strings.Contains(l, "consent") || strings.Contains(l, "lock"):
			cost += consentLayerSurcharge
		}
	}
	if cost > maxResourceCost {
		cost = maxResourceCost
	}
	return cost
}

func hasSandboxLayer(layers []string) bool {
	for _, layer := range layers {
		l := strings.ToLower(layer)
		if strings.Contains(l, "execute") || strings.Contains(l, "sandbox") {
			return true
		}
	}
	return false
}

func reasoning(p *ValidationPattern, trend Trend) string {
	var reasons []string
	if p.Frequency >= 10 {
		reasons = append(reasons, "high frequency")
	}
	if p.AverageLatency > latencyBoostThresholdMS {
		reasons = append(reasons, "high latency")
	}
	if p.CacheHitRate < cacheMissBoostThreshold {
		reasons = append(reasons, "low cache hit rate")
	}
	if trend == TrendRising {
		reasons = append(reasons, "rising trend")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "meets heat threshold")
	}
	return strings.Join(reasons, ", ")
}

func priorityWeight(p Priority) float64 {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}
