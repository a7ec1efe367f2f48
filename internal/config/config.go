package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Heatmap HeatmapConfig `yaml:"heatmap"`
	Events  EventConfig   `yaml:"events"`
}

type ServerConfig struct {
	Port     int    `yaml:"port" default:"8080"`
	LogLevel string `yaml:"log_level" default:"info"`
}

// HeatmapConfig carries the tracker settings. All fields are fixed at
// construction; there is no runtime reconfiguration.
type HeatmapConfig struct {
	Enabled             bool          `yaml:"enabled" default:"true"`
	MaxEntries          int           `yaml:"max_entries" default:"10000"`
	DecayFactor         float64       `yaml:"decay_factor" default:"0.95"`
	MinHeatScore        float64       `yaml:"min_heat_score" default:"1.0"`
	AggregationInterval time.Duration `yaml:"aggregation_interval" default:"5m"`
	Persist             bool          `yaml:"persist" default:"false"` // reserved, no-op
}

type EventConfig struct {
	BufferSize int `yaml:"buffer_size" default:"1000"`
}

// Default returns the configuration used when no file or env overrides are
// supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     8080,
			LogLevel: "info",
		},
		Heatmap: HeatmapConfig{
			Enabled:             true,
			MaxEntries:          10000,
			DecayFactor:         0.95,
			MinHeatScore:        1.0,
			AggregationInterval: 5 * time.Minute,
		},
		Events: EventConfig{
			BufferSize: 1000,
		},
	}
}

// UnmarshalYAML decodes the heatmap section, accepting human-readable
// durations ("5m", "1h") and leaving defaults in place for absent fields.
func (h *HeatmapConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enabled             *bool    `yaml:"enabled"`
		MaxEntries          *int     `yaml:"max_entries"`
		DecayFactor         *float64 `yaml:"decay_factor"`
		MinHeatScore        *float64 `yaml:"min_heat_score"`
		AggregationInterval string   `yaml:"aggregation_interval"`
		Persist             *bool    `yaml:"persist"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Enabled != nil {
		h.Enabled = *raw.Enabled
	}
	if raw.MaxEntries != nil {
		h.MaxEntries = *raw.MaxEntries
	}
	if raw.DecayFactor != nil {
		h.DecayFactor = *raw.DecayFactor
	}
	if raw.MinHeatScore != nil {
		h.MinHeatScore = *raw.MinHeatScore
	}
	if raw.AggregationInterval != "" {
		d, err := time.ParseDuration(raw.AggregationInterval)
		if err != nil {
			return fmt.Errorf("config: invalid aggregation_interval: %w", err)
		}
		h.AggregationInterval = d
	}
	if raw.Persist != nil {
		h.Persist = *raw.Persist
	}
	return nil
}

// Load reads a yaml config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) // #nosec G304 - operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
