// FILE: loggen/src/internal/sink/sink_test.go
package sink

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"strconv"
	"sync"
	"testing"
	"time"

	"loggen/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestNewFileSink(t *testing.T) {
	logger := newTestLogger()

	testCases := []struct {
		name      string
		directory string
		file      string
	}{
		{name: "EmptyDirectory", directory: "", file: "a.log"},
		{name: "EmptyName", directory: "logs", file: ""},
		{name: "NestedName", directory: "logs", file: "sub/a.log"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fs, err := NewFileSink(tc.directory, tc.file, logger)
			assert.Error(t, err)
			assert.Nil(t, fs)
		})
	}
}

func TestFileSink_Write(t *testing.T) {
	logger := newTestLogger()

	t.Run("CreatesDirectoryAndAppends", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "shared", "logs")
		fs, err := NewFileSink(dir, "backend.log", logger)
		require.NoError(t, err)

		require.NoError(t, fs.Write([]byte("first\n")))
		require.NoError(t, fs.Write([]byte("second\n")))

		data, err := os.ReadFile(filepath.Join(dir, "backend.log"))
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(data))

		stats := fs.GetStats()
		assert.Equal(t, uint64(2), stats.TotalWritten)
		assert.Equal(t, uint64(0), stats.TotalErrors)
		assert.False(t, stats.LastWritten.IsZero())
	})

	t.Run("KeepsExistingContent", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "frontend.log")
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

		fs, err := NewFileSink(dir, "frontend.log", logger)
		require.NoError(t, err)
		require.NoError(t, fs.Write([]byte("new\n")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old\nnew\n", string(data))
	})

	t.Run("ErrorWhenPathIsDirectory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "database.log"), 0o755))

		fs, err := NewFileSink(dir, "database.log", logger)
		require.NoError(t, err)

		err = fs.Write([]byte("line\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open")
		assert.Equal(t, uint64(1), fs.GetStats().TotalErrors)
	})
}

func TestConsoleSink(t *testing.T) {
	logger := newTestLogger()

	t.Run("InvalidTarget", func(t *testing.T) {
		_, err := NewConsoleSink("split", logger)
		assert.Error(t, err)
	})

	t.Run("DefaultsToStdout", func(t *testing.T) {
		s, err := NewConsoleSink("", logger)
		require.NoError(t, err)
		assert.Equal(t, "stdout", s.Name())
	})

	t.Run("ConcurrentWritesDoNotInterleave", func(t *testing.T) {
		var buf bytes.Buffer
		s := NewConsoleSinkWriter("stdout", &buf, logger)

		line := strings.Repeat("x", 512) + "\n"
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					assert.NoError(t, s.Write([]byte(line)))
				}
			}()
		}
		wg.Wait()

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		assert.Len(t, lines, 400)
		for _, l := range lines {
			assert.Equal(t, strings.TrimSuffix(line, "\n"), l)
		}
		assert.Equal(t, uint64(400), s.GetStats().TotalWritten)
	})
}

type failingSink struct {
	calls int
}

func (f *failingSink) Write([]byte) error {
	f.calls++
	return errors.New("broken pipe")
}
func (f *failingSink) Name() string        { return "failing" }
func (f *failingSink) Close() error        { return nil }
func (f *failingSink) GetStats() SinkStats { return SinkStats{Type: "failing"} }

func TestWriter(t *testing.T) {
	logger := newTestLogger()

	t.Run("MirrorsAfterFile", func(t *testing.T) {
		dir := t.TempDir()
		fs, err := NewFileSink(dir, "backend.log", logger)
		require.NoError(t, err)

		var buf bytes.Buffer
		console := NewConsoleSinkWriter("stdout", &buf, logger)
		w := NewWriter("backend", fs, []Sink{console}, logger)

		require.NoError(t, w.Write([]byte("hello\n")))
		assert.Equal(t, "hello\n", buf.String())
		assert.Equal(t, filepath.Join(dir, "backend.log"), w.Path())
		assert.Equal(t, uint64(1), w.FileStats().TotalWritten)
	})

	t.Run("FileErrorSkipsMirrors", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "backend.log"), 0o755))
		fs, err := NewFileSink(dir, "backend.log", logger)
		require.NoError(t, err)

		var buf bytes.Buffer
		console := NewConsoleSinkWriter("stdout", &buf, logger)
		w := NewWriter("backend", fs, []Sink{console}, logger)

		assert.Error(t, w.Write([]byte("hello\n")))
		assert.Empty(t, buf.String())
	})

	t.Run("MirrorErrorIsNotFatal", func(t *testing.T) {
		fs, err := NewFileSink(t.TempDir(), "backend.log", logger)
		require.NoError(t, err)

		mirror := &failingSink{}
		w := NewWriter("backend", fs, []Sink{mirror}, logger)

		assert.NoError(t, w.Write([]byte("hello\n")))
		assert.Equal(t, 1, mirror.calls)
	})
}

func TestNewTCPSink(t *testing.T) {
	logger := newTestLogger()

	t.Run("NilOptions", func(t *testing.T) {
		_, err := NewTCPSink(nil, logger)
		assert.Error(t, err)
	})

	t.Run("InvalidBuffer", func(t *testing.T) {
		_, err := NewTCPSink(&config.TCPConfig{Host: "127.0.0.1", Port: 9514}, logger)
		assert.Error(t, err)
	})

	t.Run("DropsWhenBufferFull", func(t *testing.T) {
		s, err := NewTCPSink(&config.TCPConfig{Host: "127.0.0.1", Port: 9514, BufferSize: 1}, logger)
		require.NoError(t, err)

		// Not started: nothing drains the buffer
		require.NoError(t, s.Write([]byte("a\n")))
		require.NoError(t, s.Write([]byte("b\n")))

		stats := s.GetStats()
		assert.Equal(t, "tcp", stats.Type)
		assert.Equal(t, uint64(1), stats.Details["total_dropped"])
	})
}

// freePort reserves an ephemeral port and releases it for the server under test.
func freePort(t *testing.T) int64 {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return int64(port)
}

func TestTCPSink_Broadcast(t *testing.T) {
	port := freePort(t)
	s, err := NewTCPSink(&config.TCPConfig{Host: "127.0.0.1", Port: port, BufferSize: 16}, newTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))

	conn, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", strconv.FormatInt(port, 10)), 2*time.Second)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return s.GetStats().ActiveConnections == 1
	}, 2*time.Second, 10*time.Millisecond)

	line := "2024-01-01T00:00:00.000000  level=INFO component=backend Cache miss for key user_123.\n"
	require.NoError(t, s.Write([]byte(line)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	got, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, line, got)

	require.Eventually(t, func() bool {
		return s.GetStats().TotalWritten == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Client disconnect unregisters the subscriber
	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return s.GetStats().ActiveConnections == 0
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Close())
	assert.Equal(t, int64(0), s.GetStats().ActiveConnections)
	assert.Error(t, s.Write([]byte(line)), "writes after close are rejected")
}

func TestTCPSink_CloseDisconnectsClients(t *testing.T) {
	port := freePort(t)
	s, err := NewTCPSink(&config.TCPConfig{Host: "127.0.0.1", Port: port, BufferSize: 16}, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	conn, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", strconv.FormatInt(port, 10)), 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return s.GetStats().ActiveConnections == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Close())
	require.Eventually(t, func() bool {
		return s.GetStats().ActiveConnections == 0
	}, 2*time.Second, 10*time.Millisecond)

	// The server side is gone: the client sees EOF
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err = conn.Read(make([]byte, 1))
	assert.Error(t, err)
}
