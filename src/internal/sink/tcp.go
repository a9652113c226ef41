// FILE: loggen/src/internal/sink/tcp.go
package sink

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"loggen/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/panjf2000/gnet/v2"
)

// TCPSink broadcasts every generated line to connected TCP clients.
// Clients only read; anything they send is discarded.
type TCPSink struct {
	config *config.TCPConfig

	// Network
	server   *tcpServer
	engine   *gnet.Engine
	engineMu sync.Mutex

	// Application
	input  chan []byte
	logger *log.Logger

	// Runtime
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	// Statistics
	counters
	activeConns  atomic.Int64
	totalDropped atomic.Uint64

	// Error tracking
	consecutiveWriteErrors map[gnet.Conn]int
	errorMu                sync.Mutex
}

// tcpServer implements the gnet.EventHandler interface for the TCP sink.
type tcpServer struct {
	gnet.BuiltinEventEngine
	sink    *TCPSink
	clients map[gnet.Conn]struct{}
	mu      sync.RWMutex
}

// NewTCPSink creates a new TCP broadcast sink.
func NewTCPSink(opts *config.TCPConfig, logger *log.Logger) (*TCPSink, error) {
	if opts == nil {
		return nil, fmt.Errorf("TCP sink options cannot be nil")
	}
	if opts.BufferSize < 1 {
		return nil, fmt.Errorf("TCP sink buffer size must be positive: %d", opts.BufferSize)
	}

	t := &TCPSink{
		config:                 opts,
		input:                  make(chan []byte, opts.BufferSize),
		done:                   make(chan struct{}),
		logger:                 logger,
		consecutiveWriteErrors: make(map[gnet.Conn]int),
	}
	t.initCounters()
	t.server = &tcpServer{
		sink:    t,
		clients: make(map[gnet.Conn]struct{}),
	}

	return t, nil
}

// Start launches the gnet engine and the broadcast loop.
func (t *TCPSink) Start(ctx context.Context) error {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.broadcastLoop(ctx)
	}()

	addr := fmt.Sprintf("tcp://%s:%d", t.config.Host, t.config.Port)

	// Create a gnet adapter using the existing logger instance
	gnetLogger := compat.NewGnetAdapter(t.logger)

	opts := []gnet.Option{
		gnet.WithLogger(gnetLogger),
		gnet.WithMulticore(true),
		gnet.WithReusePort(true),
	}

	errChan := make(chan error, 1)
	go func() {
		t.logger.Info("msg", "Starting TCP server",
			"component", "tcp_sink",
			"port", t.config.Port)

		err := gnet.Run(t.server, addr, opts...)
		if err != nil {
			t.logger.Error("msg", "TCP server failed",
				"component", "tcp_sink",
				"port", t.config.Port,
				"error", err)
		}
		errChan <- err
	}()

	// Wait briefly for server to start or fail
	select {
	case err := <-errChan:
		t.closeOnce.Do(func() { close(t.done) })
		t.wg.Wait()
		if err == nil {
			err = fmt.Errorf("TCP server exited during startup")
		}
		return err
	case <-time.After(100 * time.Millisecond):
		t.logger.Info("msg", "TCP server started",
			"component", "tcp_sink",
			"host", t.config.Host,
			"port", t.config.Port)
		return nil
	}
}

// Write queues the line for broadcast. A full buffer drops the line.
func (t *TCPSink) Write(line []byte) error {
	select {
	case <-t.done:
		return fmt.Errorf("TCP sink stopped")
	default:
	}

	data := append([]byte(nil), line...)
	select {
	case t.input <- data:
		return nil
	case <-t.done:
		return fmt.Errorf("TCP sink stopped")
	default:
		t.totalDropped.Add(1)
		return nil
	}
}

func (t *TCPSink) Name() string {
	return "tcp"
}

// Close stops the engine and the broadcast loop.
func (t *TCPSink) Close() error {
	t.logger.Info("msg", "Stopping TCP sink", "component", "tcp_sink")

	t.closeOnce.Do(func() { close(t.done) })

	t.engineMu.Lock()
	engine := t.engine
	t.engineMu.Unlock()

	var err error
	if engine != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = engine.Stop(ctx)
	}

	t.wg.Wait()
	t.logger.Info("msg", "TCP sink stopped", "component", "tcp_sink")
	return err
}

func (t *TCPSink) GetStats() SinkStats {
	stats := t.stats("tcp", map[string]any{
		"host":          t.config.Host,
		"port":          t.config.Port,
		"buffer_size":   t.config.BufferSize,
		"total_dropped": t.totalDropped.Load(),
	})
	stats.ActiveConnections = t.activeConns.Load()
	return stats
}

// broadcastLoop drains the input channel to all clients.
func (t *TCPSink) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.done:
			return
		case data := <-t.input:
			t.broadcastData(data)
		}
	}
}

// broadcastData sends a formatted line to all connected clients.
func (t *TCPSink) broadcastData(data []byte) {
	t.server.mu.RLock()
	defer t.server.mu.RUnlock()

	for conn := range t.server.clients {
		conn.AsyncWrite(data, func(c gnet.Conn, err error) error {
			if err != nil {
				t.recordError()
				t.handleWriteError(c, err)
			} else {
				t.recordWrite()
				t.errorMu.Lock()
				delete(t.consecutiveWriteErrors, c)
				t.errorMu.Unlock()
			}
			return nil
		})
	}
}

// handleWriteError closes a connection after repeated async write errors.
func (t *TCPSink) handleWriteError(c gnet.Conn, err error) {
	remoteAddrStr := c.RemoteAddr().String()

	t.errorMu.Lock()
	defer t.errorMu.Unlock()

	t.consecutiveWriteErrors[c]++
	errorCount := t.consecutiveWriteErrors[c]

	t.logger.Debug("msg", "AsyncWrite error",
		"component", "tcp_sink",
		"remote_addr", remoteAddrStr,
		"error", err,
		"consecutive_errors", errorCount)

	if errorCount >= 3 {
		t.logger.Warn("msg", "Closing connection due to repeated write errors",
			"component", "tcp_sink",
			"remote_addr", remoteAddrStr,
			"error_count", errorCount)
		delete(t.consecutiveWriteErrors, c)
		c.Close()
	}
}

// OnBoot is called when the server starts.
func (s *tcpServer) OnBoot(eng gnet.Engine) gnet.Action {
	s.sink.engineMu.Lock()
	s.sink.engine = &eng
	s.sink.engineMu.Unlock()

	s.sink.logger.Debug("msg", "TCP server booted",
		"component", "tcp_sink",
		"port", s.sink.config.Port)
	return gnet.None
}

// OnOpen registers a new subscriber.
func (s *tcpServer) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	newCount := s.sink.activeConns.Add(1)
	s.sink.logger.Debug("msg", "TCP connection opened",
		"component", "tcp_sink",
		"remote_addr", c.RemoteAddr().String(),
		"active_connections", newCount)

	return nil, gnet.None
}

// OnClose removes a subscriber.
func (s *tcpServer) OnClose(c gnet.Conn, err error) gnet.Action {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	s.sink.errorMu.Lock()
	delete(s.sink.consecutiveWriteErrors, c)
	s.sink.errorMu.Unlock()

	newCount := s.sink.activeConns.Add(-1)
	s.sink.logger.Debug("msg", "TCP connection closed",
		"component", "tcp_sink",
		"remote_addr", c.RemoteAddr().String(),
		"active_connections", newCount,
		"error", err)
	return gnet.None
}

// OnTraffic discards anything a client sends.
func (s *tcpServer) OnTraffic(c gnet.Conn) gnet.Action {
	c.Discard(-1)
	return gnet.None
}
