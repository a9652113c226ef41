// FILE: loggen/src/internal/config/validation.go
package config

import (
	"fmt"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// validateConfig is the centralized validator for the entire configuration
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := lconfig.NonEmpty(cfg.LogDir); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Components))
	for i, name := range cfg.Components {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("components[%d]: empty name", i)
		}
		if seen[name] {
			return fmt.Errorf("components[%d]: duplicate name '%s'", i, name)
		}
		seen[name] = true
	}

	if cfg.StatusIntervalMS < 1000 {
		return fmt.Errorf("status_interval_ms too small: %d ms (min: 1000ms)", cfg.StatusIntervalMS)
	}
	if cfg.ShutdownTimeoutMS < 1 {
		return fmt.Errorf("shutdown_timeout_ms must be positive: %d", cfg.ShutdownTimeoutMS)
	}

	if err := validateGenerator(cfg.Generator); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if err := validateFormat(cfg.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := validateConsole(cfg.Console); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	if err := validateTCP(cfg.TCP); err != nil {
		return fmt.Errorf("tcp: %w", err)
	}
	if err := validateStatus(cfg.Status); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	if cfg.TCP.Enabled && cfg.Status.Enabled && cfg.TCP.Port == cfg.Status.Port {
		return fmt.Errorf("tcp and status servers share port %d", cfg.TCP.Port)
	}
	if err := validateLogConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func validateGenerator(g *GeneratorConfig) error {
	if g == nil {
		return fmt.Errorf("section missing")
	}
	if g.MinDelayMS < 1 {
		return fmt.Errorf("min_delay_ms must be at least 1: %d", g.MinDelayMS)
	}
	if g.MaxDelayMS < g.MinDelayMS {
		return fmt.Errorf("max_delay_ms (%d) below min_delay_ms (%d)", g.MaxDelayMS, g.MinDelayMS)
	}
	if g.MaxEntriesPerSecond < 0 {
		return fmt.Errorf("max_entries_per_second must not be negative: %g", g.MaxEntriesPerSecond)
	}
	if g.Burst < 0 {
		return fmt.Errorf("burst must not be negative: %d", g.Burst)
	}
	if g.Seed < 0 {
		return fmt.Errorf("seed must not be negative: %d", g.Seed)
	}
	return nil
}

func validateFormat(f *FormatConfig) error {
	if f == nil {
		return fmt.Errorf("section missing")
	}
	if err := lconfig.NonEmpty(f.TimestampFormat); err != nil {
		return fmt.Errorf("timestamp_format: %w", err)
	}
	return nil
}

func validateConsole(c *ConsoleConfig) error {
	if c == nil {
		return fmt.Errorf("section missing")
	}
	switch c.Target {
	case "stdout", "stderr":
		return nil
	default:
		return fmt.Errorf("invalid target '%s' (must be 'stdout' or 'stderr')", c.Target)
	}
}

func validateTCP(t *TCPConfig) error {
	if t == nil {
		return fmt.Errorf("section missing")
	}
	if !t.Enabled {
		return nil
	}
	if err := lconfig.Port(t.Port); err != nil {
		return fmt.Errorf("invalid port %d: %w", t.Port, err)
	}
	if t.BufferSize < 1 {
		return fmt.Errorf("buffer_size must be positive: %d", t.BufferSize)
	}
	return nil
}

func validateStatus(s *StatusConfig) error {
	if s == nil {
		return fmt.Errorf("section missing")
	}
	if !s.Enabled {
		return nil
	}
	if err := lconfig.Port(s.Port); err != nil {
		return fmt.Errorf("invalid port %d: %w", s.Port, err)
	}
	for _, path := range []string{s.StatusPath, s.HealthPath} {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("path must start with /: %s", path)
		}
	}
	if s.StatusPath == s.HealthPath {
		return fmt.Errorf("status and health paths must differ: %s", s.StatusPath)
	}
	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	if cfg == nil {
		return fmt.Errorf("section missing")
	}

	validOutputs := map[string]bool{
		"file": true, "stdout": true, "stderr": true,
		"both": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	if cfg.Output == "file" || cfg.Output == "both" {
		if cfg.File == nil {
			return fmt.Errorf("file output requires [logging.file]")
		}
		if err := lconfig.NonEmpty(cfg.File.Directory); err != nil {
			return fmt.Errorf("file directory: %w", err)
		}
		if err := lconfig.NonEmpty(cfg.File.Name); err != nil {
			return fmt.Errorf("file name: %w", err)
		}
	}

	return nil
}

// Validate checks a configuration assembled outside LoadWithCLI.
func (c *Config) Validate() error {
	return validateConfig(c)
}
