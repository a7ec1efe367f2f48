package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration overrides from environment variables.
func LoadFromEnv(cfg *Config) {
	if port := os.Getenv("WARMGATE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	if logLevel := os.Getenv("WARMGATE_LOG_LEVEL"); logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}

	if enabled := os.Getenv("WARMGATE_TRACKING_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			cfg.Heatmap.Enabled = b
		}
	}

	if maxEntries := os.Getenv("WARMGATE_MAX_PATTERNS"); maxEntries != "" {
		if n, err := strconv.Atoi(maxEntries); err == nil {
			cfg.Heatmap.MaxEntries = n
		}
	}

	if factor := os.Getenv("WARMGATE_DECAY_FACTOR"); factor != "" {
		if f, err := strconv.ParseFloat(factor, 64); err == nil {
			cfg.Heatmap.DecayFactor = f
		}
	}

	if minHeat := os.Getenv("WARMGATE_MIN_HEAT_SCORE"); minHeat != "" {
		if f, err := strconv.ParseFloat(minHeat, 64); err == nil {
			cfg.Heatmap.MinHeatScore = f
		}
	}

	if interval := os.Getenv("WARMGATE_AGGREGATION_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.Heatmap.AggregationInterval = d
		}
	}
}

// GetEnvOrDefault returns environment variable or default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
