package model

import (
	"fmt"
	"runtime"
	"time"
)

// DefaultWindow is the trigger window for categories without an override
const DefaultWindow = 4

// Config holds every tunable of assertia
type Config struct {
	Windows      map[string]int     `yaml:"windows" mapstructure:"windows"` // token window per category
	Triggers     TriggersConfig     `yaml:"triggers" mapstructure:"triggers"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// TriggersConfig selects the term-list provider
type TriggersConfig struct {
	// Path is a directory of *_triggers.txt files or a .yaml file.
	// Empty uses the lists compiled into the binary.
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig controls result memoization
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"` // disk layer, empty = memory only
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles batch throughput per input source; 0 disables it
type RateLimitingConfig struct {
	PerSecond float64      `yaml:"per_second" mapstructure:"per_second"`
	Burst     int          `yaml:"burst" mapstructure:"burst"`
	Sources   []SourceRate `yaml:"sources,omitempty" mapstructure:"sources"`
}

// SourceRate overrides the limit for one input file
type SourceRate struct {
	Path      string  `yaml:"path" mapstructure:"path"`
	PerSecond float64 `yaml:"per_second" mapstructure:"per_second"`
	Burst     int     `yaml:"burst,omitempty" mapstructure:"burst"`
}

type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or console
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Windows: map[string]int{
			CategoryNegated.String():      5,
			CategoryExperiencer.String():  8,
			CategoryHistorical.String():   8,
			CategoryHypothetical.String(): 5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		RateLimiting: RateLimitingConfig{
			Burst: 10,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// CategoryWindows converts the configured windows into a per-category map
func (c *Config) CategoryWindows() (map[Category]int, error) {
	windows := make(map[Category]int, len(c.Windows))
	for key, size := range c.Windows {
		cat, err := ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("windows: %w", err)
		}
		if size <= 0 {
			return nil, fmt.Errorf("windows: %s must be positive, got %d", key, size)
		}
		windows[cat] = size
	}
	return windows, nil
}
