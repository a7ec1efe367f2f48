// internal/heatmap/pattern.go
package heatmap

import (
	"strings"
	"time"
)

// Trend classifies the direction of a pattern's recent access cadence.
type Trend string

const (
	TrendRising    Trend = "rising"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// PipelineID derives a stable identifier for an ordered layer list under a
// policy version, e.g. "auth->encrypt->execute_v3".
func PipelineID(layers []string, policyVersion string) string {
	return strings.Join(layers, "->") + "_v" + policyVersion
}

// PatternKey derives the store key for one pipeline/input combination.
func PatternKey(pipelineID, inputHash string) string {
	return pipelineID + ":" + inputHash
}

// ValidationPattern holds the running statistics for one distinct
// pipeline+input combination.
type ValidationPattern struct {
	PipelineID    string    `json:"pipeline_id"`
	Layers        []string  `json:"layers"`
	InputHash     string    `json:"input_hash"`
	PolicyVersion string    `json:"policy_version"`
	Frequency     int64     `json:"frequency"`
	LastAccessed  time.Time `json:"last_accessed"`

	// Running averages, updated incrementally on every observation.
	AverageLatency float64 `json:"average_latency_ms"`
	SuccessRate    float64 `json:"success_rate"`
	CacheHitRate   float64 `json:"cache_hit_rate"`
}

// Entry wraps a ValidationPattern with its derived heat state. Exactly one
// Entry exists per pattern key.
type Entry struct {
	Pattern             *ValidationPattern `json:"pattern"`
	HeatScore           float64            `json:"heat_score"`
	Trend               Trend              `json:"trend"`
	PredictedNextAccess time.Time          `json:"predicted_next_access"`
	PreWarmingCandidate bool               `json:"pre_warming_candidate"`
}

// EntrySnapshot is a detached copy of an Entry, safe to hand out of the
// tracker without exposing its mutable state.
type EntrySnapshot struct {
	Key                 string            `json:"key"`
	Pattern             ValidationPattern `json:"pattern"`
	HeatScore           float64           `json:"heat_score"`
	Trend               Trend             `json:"trend"`
	PredictedNextAccess time.Time         `json:"predicted_next_access"`
	PreWarmingCandidate bool              `json:"pre_warming_candidate"`
}

func snapshotEntry(key string, e *Entry) EntrySnapshot {
	p := *e.Pattern
	p.Layers = append([]string(nil), e.Pattern.Layers...)
	return EntrySnapshot{
		Key:                 key,
		Pattern:             p,
		HeatScore:           e.HeatScore,
		Trend:               e.Trend,
		PredictedNextAccess: e.PredictedNextAccess,
		PreWarmingCandidate: e.PreWarmingCandidate,
	}
}
