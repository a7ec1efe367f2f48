// internal/api/heatmap_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warmforge/warmgate/internal/config"
	"github.com/warmforge/warmgate/internal/heatmap"
	"github.com/warmforge/warmgate/internal/metrics"
	"go.uber.org/zap"
)

func newTestServer() (*Server, *heatmap.Tracker) {
	cfg := config.Default()
	hcfg := heatmap.DefaultConfig()
	hcfg.MinHeatScore = 0.1
	m := metrics.New()
	tracker := heatmap.New(hcfg, zap.NewNop(), nil, m)
	return NewServer(cfg, zap.NewNop(), tracker, m), tracker
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer()
	rec := doRequest(t, s, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestHandleStats(t *testing.T) {
	s, tracker := newTestServer()
	tracker.RecordValidation([]string{"auth", "execute"}, "h1", "1", 200, true, false)
	tracker.RecordValidation([]string{"auth", "execute"}, "h1", "1", 100, true, true)

	rec := doRequest(t, s, http.MethodGet, "/api/heatmap/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, 2.0, body["total_validations"])
	assert.Equal(t, 1.0, body["unique_patterns"])
}

func TestHandleHotPatterns(t *testing.T) {
	s, tracker := newTestServer()
	for i := 0; i < 10; i++ {
		tracker.RecordValidation([]string{"auth"}, "h1", "1", 200, true, false)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/heatmap/hot?limit=5")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, 1.0, body["count"])
}

func TestHandleRecommendations_Empty(t *testing.T) {
	s, _ := newTestServer()
	rec := doRequest(t, s, http.MethodGet, "/api/heatmap/recommendations")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, 0.0, body["count"])
}

func TestHandlePrediction(t *testing.T) {
	s, tracker := newTestServer()
	tracker.RecordValidation([]string{"auth"}, "h1", "1", 100, true, false)
	tracker.RecordValidation([]string{"auth"}, "h1", "1", 100, true, false)

	key := heatmap.PatternKey(heatmap.PipelineID([]string{"auth"}, "1"), "h1")
	rec := doRequest(t, s, http.MethodGet, "/api/heatmap/prediction?key="+url.QueryEscape(key))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, key, body["pattern_key"])
	assert.NotNil(t, body["predicted_next_access"])
}

func TestHandlePrediction_UnknownKey(t *testing.T) {
	s, _ := newTestServer()
	rec := doRequest(t, s, http.MethodGet, "/api/heatmap/prediction?key=nope")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeBody(t, rec)["predicted_next_access"])
}

func TestHandlePrediction_MissingKey(t *testing.T) {
	s, _ := newTestServer()
	rec := doRequest(t, s, http.MethodGet, "/api/heatmap/prediction")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePreWarm(t *testing.T) {
	s, _ := newTestServer()
	rec := doRequest(t, s, http.MethodGet, "/api/heatmap/prewarm?key=nope")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["pre_warm"])
}

func TestHandleExport(t *testing.T) {
	s, tracker := newTestServer()
	tracker.RecordValidation([]string{"auth"}, "h1", "1", 100, true, false)

	rec := doRequest(t, s, http.MethodGet, "/api/heatmap/export")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	entries, ok := body["entries"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, entries, 1)
}

func TestHandleClear(t *testing.T) {
	s, tracker := newTestServer()
	tracker.RecordValidation([]string{"auth"}, "h1", "1", 100, true, false)

	rec := doRequest(t, s, http.MethodDelete, "/api/heatmap")
	require.Equal(t, http.StatusNoContent, rec.Code)

	stats := doRequest(t, s, http.MethodGet, "/api/heatmap/stats")
	assert.Equal(t, 0.0, decodeBody(t, stats)["unique_patterns"])
}

func TestMetricsEndpoint(t *testing.T) {
	s, tracker := newTestServer()
	tracker.RecordValidation([]string{"auth"}, "h1", "1", 100, true, false)

	rec := doRequest(t, s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
