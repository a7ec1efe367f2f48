// internal/api/heatmap.go
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.UsageStats())
}

func (s *Server) handleHotPatterns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	hot := s.tracker.HotPatterns(limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"patterns": hot,
		"count":    len(hot),
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	recs := s.tracker.PreWarmingRecommendations()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}

func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "missing key parameter", http.StatusBadRequest)
		return
	}

	predicted, ok := s.tracker.PredictNextAccess(key)
	var at *time.Time
	if ok {
		at = &predicted
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pattern_key":           key,
		"predicted_next_access": at,
	})
}

func (s *Server) handlePreWarm(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "missing key parameter", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pattern_key": key,
		"pre_warm":    s.tracker.ShouldPreWarm(key),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Export())
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.tracker.Clear()
	w.WriteHeader(http.StatusNoContent)
}
