// FILE: loggen/src/cmd/loggen/bootstrap_test.go
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"loggen/src/internal/catalog"
	"loggen/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLogConfig(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "ops")

	testCases := []struct {
		name          string
		output        string
		quiet         bool
		wantConsole   bool
		wantTarget    string
		wantNoFile    bool
		wantDirectory string
		wantErr       bool
	}{
		{name: "Quiet", output: "both", quiet: true, wantConsole: false, wantNoFile: true},
		{name: "None", output: "none", wantConsole: false, wantNoFile: true},
		{name: "Stdout", output: "stdout", wantConsole: true, wantTarget: "stdout", wantNoFile: true},
		{name: "Stderr", output: "stderr", wantConsole: true, wantTarget: "stderr", wantNoFile: true},
		{name: "File", output: "file", wantConsole: false, wantNoFile: false, wantDirectory: logDir},
		{name: "Both", output: "both", wantConsole: true, wantTarget: "stderr", wantNoFile: false, wantDirectory: logDir},
		{name: "Invalid", output: "syslog", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Quiet = tc.quiet
			cfg.Logging.Output = tc.output
			cfg.Logging.File.Directory = logDir

			logCfg, err := buildLogConfig(cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tc.wantConsole, logCfg.EnableConsole)
			assert.Equal(t, tc.wantNoFile, logCfg.DisableFile)
			if tc.wantTarget != "" {
				assert.Equal(t, tc.wantTarget, logCfg.ConsoleTarget)
			}
			if tc.wantDirectory != "" {
				assert.Equal(t, tc.wantDirectory, logCfg.Directory)
				assert.Equal(t, "loggen", logCfg.Name)
			}
		})
	}

	t.Run("Level", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Logging.Level = "debug"
		logCfg, err := buildLogConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, int64(log.LevelDebug), logCfg.Level)

		cfg.Logging.Level = "loud"
		_, err = buildLogConfig(cfg)
		assert.Error(t, err)
	})
}

func TestInitializeLogger(t *testing.T) {
	for _, output := range []string{"none", "stderr"} {
		t.Run(output, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Logging.Output = output

			require.NoError(t, initializeLogger(cfg))
			require.NotNil(t, logger)
			logger.Info("msg", "logger initialized", "component", "test")
			assert.NoError(t, logger.Shutdown(time.Second))
		})
	}
}

// dirSnapshotWriter records, for every banner line, how many files the log
// directory held at the moment it was printed.
type dirSnapshotWriter struct {
	dir   string
	mu    sync.Mutex
	lines []string
	files []int
}

func (w *dirSnapshotWriter) Write(p []byte) (int, error) {
	entries, _ := os.ReadDir(w.dir)
	w.mu.Lock()
	w.lines = append(w.lines, string(p))
	w.files = append(w.files, len(entries))
	w.mu.Unlock()
	return len(p), nil
}

func TestBootstrapService_BannersPrecedeGeneration(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.MkdirAll(logDir, 0o755))

	cfg := config.Defaults()
	cfg.LogDir = logDir
	cfg.Console.Enabled = false
	cfg.Generator.MinDelayMS = 1
	cfg.Generator.MaxDelayMS = 2

	w := &dirSnapshotWriter{dir: logDir}
	logger = log.NewLogger()
	output = &OutputHandler{stdout: w, stderr: io.Discard}
	defer func() { output = nil }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, statusServer, err := bootstrapService(ctx, cfg, catalog.Default())
	require.NoError(t, err)
	assert.Nil(t, statusServer)
	defer svc.Shutdown()

	w.mu.Lock()
	defer w.mu.Unlock()
	banners := 0
	for i, line := range w.lines {
		if strings.HasPrefix(line, "Starting log generation for ") {
			banners++
			assert.Zero(t, w.files[i], "no component may write before every banner is printed")
		}
	}
	assert.Equal(t, len(catalog.Default().Names()), banners)
}
