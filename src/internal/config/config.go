// FILE: loggen/src/internal/config/config.go
package config

import (
	"time"

	"loggen/src/internal/core"
)

type Config struct {
	// Directory receiving one output file per component
	LogDir string `toml:"log_dir"`

	// Optional YAML catalog replacing the built-in one
	CatalogFile string `toml:"catalog_file"`

	// Component names to run; empty runs every catalog component
	Components []string `toml:"components"`

	// Runtime behavior
	Quiet                 bool  `toml:"quiet"`
	DisableStatusReporter bool  `toml:"disable_status_reporter"`
	StatusIntervalMS      int64 `toml:"status_interval_ms"`
	ShutdownTimeoutMS     int64 `toml:"shutdown_timeout_ms"`

	Generator *GeneratorConfig `toml:"generator"`
	Format    *FormatConfig    `toml:"format"`
	Console   *ConsoleConfig   `toml:"console"`
	TCP       *TCPConfig       `toml:"tcp"`
	Status    *StatusConfig    `toml:"status"`
	Logging   *LogConfig       `toml:"logging"`
}

// GeneratorConfig controls the per-component generation loops
type GeneratorConfig struct {
	// Uniform delay range between two entries of one component
	MinDelayMS int64 `toml:"min_delay_ms"`
	MaxDelayMS int64 `toml:"max_delay_ms"`

	// Cap on entries per second across all components (0 = unlimited)
	MaxEntriesPerSecond float64 `toml:"max_entries_per_second"`
	Burst               int64   `toml:"burst"`

	// Fixed seed for reproducible output (0 = random, negative rejected)
	Seed int64 `toml:"seed"`
}

// FormatConfig controls line serialization
type FormatConfig struct {
	// Go time layout for entry timestamps
	TimestampFormat string `toml:"timestamp_format"`

	// text/template used by txt components
	TextTemplate string `toml:"text_template"`
}

// ConsoleConfig controls the console echo of generated entries
type ConsoleConfig struct {
	Enabled bool `toml:"enabled"`

	// "stdout" or "stderr"
	Target string `toml:"target"`
}

// TCPConfig controls the optional TCP broadcast of generated entries
type TCPConfig struct {
	Enabled    bool   `toml:"enabled"`
	Host       string `toml:"host"`
	Port       int64  `toml:"port"`
	BufferSize int64  `toml:"buffer_size"`
}

// StatusConfig controls the optional HTTP status endpoint
type StatusConfig struct {
	Enabled    bool   `toml:"enabled"`
	Host       string `toml:"host"`
	Port       int64  `toml:"port"`
	StatusPath string `toml:"status_path"`
	HealthPath string `toml:"health_path"`
}

const DefaultTextTemplate = "{{FmtTime .Timestamp}}  level={{.Level}} component={{.Component}} {{.Message}}"

func defaults() *Config {
	return &Config{
		LogDir:            core.DefaultLogDir,
		StatusIntervalMS:  core.DefaultStatusInterval.Milliseconds(),
		ShutdownTimeoutMS: core.DefaultShutdownTimeout.Milliseconds(),
		Generator: &GeneratorConfig{
			MinDelayMS: core.DefaultMinDelay.Milliseconds(),
			MaxDelayMS: core.DefaultMaxDelay.Milliseconds(),
		},
		Format: DefaultFormatConfig(),
		Console: &ConsoleConfig{
			Enabled: true,
			Target:  "stdout",
		},
		TCP: &TCPConfig{
			Enabled:    false,
			Host:       "0.0.0.0",
			Port:       9514,
			BufferSize: 1000,
		},
		Status: &StatusConfig{
			Enabled:    false,
			Host:       "127.0.0.1",
			Port:       9515,
			StatusPath: "/status",
			HealthPath: "/health",
		},
		Logging: DefaultLogConfig(),
	}
}

// Defaults returns a fully populated configuration with built-in values.
func Defaults() *Config {
	return defaults()
}

// DefaultFormatConfig returns the line format defaults
func DefaultFormatConfig() *FormatConfig {
	return &FormatConfig{
		TimestampFormat: core.DefaultTimestampFormat,
		TextTemplate:    DefaultTextTemplate,
	}
}

func (c *Config) MinDelay() time.Duration {
	return time.Duration(c.Generator.MinDelayMS) * time.Millisecond
}

func (c *Config) MaxDelay() time.Duration {
	return time.Duration(c.Generator.MaxDelayMS) * time.Millisecond
}

func (c *Config) StatusInterval() time.Duration {
	return time.Duration(c.StatusIntervalMS) * time.Millisecond
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
