package paging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds simulator configuration
type Config struct {
	// Simulation
	Capacity   int      `json:"capacity" env:"PAGESIM_CAPACITY"`                      // Number of frames
	Algorithms []string `json:"algorithms" env:"PAGESIM_ALGORITHMS" envSeparator:","` // Empty selects all

	// Workload
	ReferenceLength int     `json:"reference_length" env:"PAGESIM_REFERENCE_LENGTH"` // Generated reference string length
	MaxPage         int     `json:"max_page" env:"PAGESIM_MAX_PAGE"`                 // Largest generated page number
	Distribution    string  `json:"distribution" env:"PAGESIM_DISTRIBUTION"`         // uniform, zipfian, sequential
	ZipfSkew        float64 `json:"zipf_skew" env:"PAGESIM_ZIPF_SKEW"`               // Zipfian constant
	Seed            int64   `json:"seed" env:"PAGESIM_SEED"`                         // 0 picks a random seed

	// Output
	EnableMetrics    bool   `json:"enable_metrics" env:"PAGESIM_ENABLE_METRICS"`       // Collect and log per-algorithm metrics
	LogLevel         string `json:"log_level" env:"PAGESIM_LOG_LEVEL"`                 // debug, info, warn, error
	TraceCompression string `json:"trace_compression" env:"PAGESIM_TRACE_COMPRESSION"` // none, lz4, snappy
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Capacity:         3,
		Algorithms:       nil, // All algorithms
		ReferenceLength:  15,
		MaxPage:          9,
		Distribution:     string(DistributionUniform),
		ZipfSkew:         0.99,
		Seed:             0,
		EnableMetrics:    true,
		LogLevel:         "info",
		TraceCompression: "snappy",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from PAGESIM_* environment variables.
// Unset variables keep their default values.
func LoadConfigFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields whose PAGESIM_* variable is set
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return ErrInvalidCapacity("Config.Validate", c.Capacity)
	}

	if _, err := c.SelectedAlgorithms(); err != nil {
		return err
	}

	if c.ReferenceLength < 0 {
		return fmt.Errorf("reference length cannot be negative")
	}

	if c.MaxPage < 0 {
		return fmt.Errorf("max page cannot be negative")
	}
	if c.MaxPage > MaxPageLimit {
		return fmt.Errorf("max page cannot exceed %d", MaxPageLimit)
	}

	dist, err := ParseDistribution(c.Distribution)
	if err != nil {
		return err
	}
	if dist == DistributionZipfian && (c.ZipfSkew <= 0 || c.ZipfSkew == 1) {
		return fmt.Errorf("zipf skew must be positive and not 1, got %g", c.ZipfSkew)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if _, err := ParseCompressionType(c.TraceCompression); err != nil {
		return err
	}

	return nil
}

// SelectedAlgorithms resolves the configured algorithm names in canonical
// order, without duplicates. An empty list selects every algorithm.
func (c *Config) SelectedAlgorithms() ([]Algorithm, error) {
	if len(c.Algorithms) == 0 {
		return Algorithms(), nil
	}

	wanted := make(map[Algorithm]bool, len(c.Algorithms))
	for _, name := range c.Algorithms {
		alg, err := ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		wanted[alg] = true
	}

	selected := make([]Algorithm, 0, len(wanted))
	for _, alg := range Algorithms() {
		if wanted[alg] {
			selected = append(selected, alg)
		}
	}
	return selected, nil
}

// SlogLevel maps the configured log level to a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
}

// Workload returns the workload options described by the configuration
func (c *Config) Workload() WorkloadOptions {
	dist, err := ParseDistribution(c.Distribution)
	if err != nil {
		// Left as given so generation reports the bad name
		dist = Distribution(c.Distribution)
	}
	return WorkloadOptions{
		Length:       c.ReferenceLength,
		MaxPage:      c.MaxPage,
		Distribution: dist,
		ZipfSkew:     c.ZipfSkew,
		Seed:         c.Seed,
	}
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	if c.Algorithms != nil {
		clone.Algorithms = append([]string(nil), c.Algorithms...)
	}
	return &clone
}
