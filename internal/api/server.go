// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/warmforge/warmgate/internal/config"
	"github.com/warmforge/warmgate/internal/heatmap"
	"github.com/warmforge/warmgate/internal/metrics"
	"go.uber.org/zap"
)

// Server exposes the tracker's query contract over HTTP for diagnostics
// and dashboard collaborators. Everything is read-only except the explicit
// clear.
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
	tracker    *heatmap.Tracker
	metrics    *metrics.Metrics
	startTime  time.Time
}

// NewServer creates the diagnostics server around a tracker.
func NewServer(cfg *config.Config, logger *zap.Logger, tracker *heatmap.Tracker, m *metrics.Metrics) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		router:    chi.NewRouter(),
		tracker:   tracker,
		metrics:   m,
		startTime: time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	s.router.Route("/api/heatmap", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/hot", s.handleHotPatterns)
		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/prediction", s.handlePrediction)
		r.Get("/prewarm", s.handlePreWarm)
		r.Get("/export", s.handleExport)
		r.Delete("/", s.handleClear)
	})
}

// Router returns the handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving. Blocks until shutdown or listen failure.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("api server listening", zap.Int("port", s.config.Server.Port))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}
