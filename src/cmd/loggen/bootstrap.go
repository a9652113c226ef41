// FILE: loggen/src/cmd/loggen/bootstrap.go
package main

import (
	"context"
	"fmt"
	"strings"

	"loggen/src/internal/catalog"
	"loggen/src/internal/config"
	"loggen/src/internal/service"
	"loggen/src/internal/status"
	"loggen/src/internal/version"

	"github.com/lixenwraith/log"
)

// loadCatalog returns the configured catalog file or the built-in catalog
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	logger.Info("msg", "Loaded catalog file",
		"path", cfg.CatalogFile,
		"components", len(cat.Names()))
	return cat, nil
}

// bootstrapService creates and starts the generators and the optional status server
func bootstrapService(ctx context.Context, cfg *config.Config, cat *catalog.Catalog) (*service.Service, *status.Server, error) {
	svc, err := service.New(ctx, cfg, cat, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create service: %w", err)
	}

	for _, comp := range svc.Components() {
		Print("Starting log generation for '%s'. Writing to '%s'\n", comp.Name, comp.Path())
	}

	if err := svc.Start(); err != nil {
		svc.Shutdown()
		return nil, nil, fmt.Errorf("failed to start service: %w", err)
	}

	var statusServer *status.Server
	if cfg.Status.Enabled {
		statusServer, err = status.NewServer(cfg.Status, svc, logger)
		if err == nil {
			err = statusServer.Start(ctx)
		}
		if err != nil {
			svc.Shutdown()
			return nil, nil, fmt.Errorf("failed to start status server: %w", err)
		}
		Print("Status endpoint: http://%s:%d%s\n", cfg.Status.Host, cfg.Status.Port, cfg.Status.StatusPath)
	}

	if cfg.TCP.Enabled {
		Print("TCP stream: %s:%d\n", cfg.TCP.Host, cfg.TCP.Port)
	}

	logger.Info("msg", "loggen started",
		"version", version.Short(),
		"instance_id", svc.InstanceID(),
		"generators", len(svc.Components()),
		"log_dir", cfg.LogDir)

	return svc, statusServer, nil
}

// initializeLogger sets up operational logging from the [logging] section
func initializeLogger(cfg *config.Config) error {
	logCfg, err := buildLogConfig(cfg)
	if err != nil {
		return err
	}

	logger = log.NewLogger()
	if err := logger.ApplyConfig(logCfg); err != nil {
		return fmt.Errorf("failed to apply logger config: %w", err)
	}
	return logger.Start()
}

// buildLogConfig maps the output mode onto the logger's console and file switches
func buildLogConfig(cfg *config.Config) (*log.Config, error) {
	logCfg := log.DefaultConfig()

	if cfg.Quiet {
		logCfg.EnableConsole = false
		logCfg.DisableFile = true
		return logCfg, nil
	}

	level, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logCfg.Level = level

	switch cfg.Logging.Output {
	case "none":
		logCfg.EnableConsole = false
		logCfg.DisableFile = true
	case "stdout", "stderr":
		logCfg.EnableConsole = true
		logCfg.ConsoleTarget = cfg.Logging.Output
		logCfg.DisableFile = true
	case "file":
		logCfg.EnableConsole = false
		logCfg.DisableFile = false
		configureFileLogging(logCfg, cfg.Logging.File)
	case "both":
		logCfg.EnableConsole = true
		logCfg.ConsoleTarget = "stderr"
		logCfg.DisableFile = false
		configureFileLogging(logCfg, cfg.Logging.File)
	default:
		return nil, fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	return logCfg, nil
}

// configureFileLogging applies the file settings of the "file" and "both" outputs
func configureFileLogging(logCfg *log.Config, file *config.LogFileConfig) {
	if file == nil {
		return
	}
	logCfg.Directory = file.Directory
	logCfg.Name = file.Name
	if file.MaxSizeMB > 0 {
		logCfg.MaxSizeKB = file.MaxSizeMB * 1000
	}
	if file.MaxTotalSizeMB >= 0 {
		logCfg.MaxTotalSizeKB = file.MaxTotalSizeMB * 1000
	}
}

func parseLogLevel(level string) (int64, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
