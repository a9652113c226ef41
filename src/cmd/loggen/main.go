// FILE: loggen/src/cmd/loggen/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"loggen/src/internal/config"
	"loggen/src/internal/service"
	"loggen/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	flagCfg, args, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagCfg.ShowHelp {
		printUsage(os.Stdout, filepath.Base(os.Args[0]))
		os.Exit(0)
	}
	if flagCfg.ShowVersion {
		fmt.Println(version.Banner())
		os.Exit(0)
	}

	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ConfigFile != "" {
		os.Setenv("LOGGEN_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(args)
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			FatalError(2, "Config file not found: %s\n", flagCfg.ConfigFile)
		}
		FatalError(1, "Failed to load config: %v\n", err)
	}

	if flagCfg.Quiet {
		cfg.Quiet = true
	}
	InitOutputHandler(cfg.Quiet)

	if err := initializeLogger(cfg); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "loggen starting",
		"version", version.String(),
		"config_file", config.GetConfigPath(),
		"log_output", cfg.Logging.Output)

	cat, err := loadCatalog(cfg)
	if err != nil {
		logger.Error("msg", "Failed to load catalog", "error", err)
		FatalError(1, "Failed to load catalog: %v\n", err)
	}

	created, err := service.EnsureLogDirectory(cfg.LogDir)
	if err != nil {
		logger.Error("msg", "Failed to create log directory", "dir", cfg.LogDir, "error", err)
		FatalError(1, "Failed to create log directory %s: %v\n", cfg.LogDir, err)
	}
	if created {
		Print("Created log directory at: %s\n", cfg.LogDir)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	svc, statusServer, err := bootstrapService(ctx, cfg, cat)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap service", "error", err)
		FatalError(1, "Failed to start: %v\n", err)
	}

	if !cfg.DisableStatusReporter {
		go statusReporter(ctx, svc, cfg.StatusInterval())
	}

	Print("Log generation is running. Press Ctrl+C to stop.\n")

	sig := <-sigChan
	logger.Info("msg", "Shutdown signal received, starting graceful shutdown...", "signal", sig.String())

	if statusServer != nil {
		statusServer.Shutdown()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		svc.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		for _, comp := range svc.Components() {
			Print("\nLog generation for '%s' stopped by user.\n", comp.Name)
		}
		Print("\nAll log generation threads stopped by user.\n")
		logger.Info("msg", "Shutdown complete")
	case <-shutdownCtx.Done():
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		shutdownLogger()
		os.Exit(1)
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort, the logger itself is gone
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
