// cmd/warmgate/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warmforge/warmgate/internal/api"
	"github.com/warmforge/warmgate/internal/config"
	"github.com/warmforge/warmgate/internal/events"
	"github.com/warmforge/warmgate/internal/heatmap"
	"github.com/warmforge/warmgate/internal/metrics"
	"go.uber.org/zap"
)

func main() {
	// Create logger
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	// Load config: defaults, optional file, env overrides
	cfg := config.Default()
	if path := config.GetEnvOrDefault("WARMGATE_CONFIG", ""); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			logger.Fatal("failed to load config", zap.String("path", path), zap.Error(err))
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)

	// Build the tracker and its collaborators
	m := metrics.New()
	emitter := events.NewEmitter(logger, cfg.Events.BufferSize)
	tracker := heatmap.New(heatmap.Config{
		Enabled:             cfg.Heatmap.Enabled,
		MaxEntries:          cfg.Heatmap.MaxEntries,
		DecayFactor:         cfg.Heatmap.DecayFactor,
		MinHeatScore:        cfg.Heatmap.MinHeatScore,
		AggregationInterval: cfg.Heatmap.AggregationInterval,
		Persist:             cfg.Heatmap.Persist,
	}, logger, emitter, m)

	tracker.StartScheduler()
	logger.Info("heat tracker running",
		zap.Bool("enabled", cfg.Heatmap.Enabled),
		zap.Int("max_patterns", cfg.Heatmap.MaxEntries),
		zap.Duration("aggregation_interval", cfg.Heatmap.AggregationInterval))

	server := api.NewServer(cfg, logger, tracker, m)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down...")
		tracker.StopScheduler()
		emitter.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
		os.Exit(0)
	}()

	if err := server.Start(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
