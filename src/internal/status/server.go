// FILE: loggen/src/internal/status/server.go
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"loggen/src/internal/config"
	"loggen/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/valyala/fasthttp"
)

// StatsProvider is the view of the supervisor the endpoint reports on.
type StatsProvider interface {
	GetGlobalStats() map[string]any
	InstanceID() string
	Uptime() time.Duration
}

// Server exposes generator statistics over HTTP.
type Server struct {
	config   *config.StatusConfig
	provider StatsProvider
	server   *fasthttp.Server
	logger   *log.Logger

	totalRequests  atomic.Uint64
	failedRequests atomic.Uint64
}

// NewServer creates a status server; Start binds the listener.
func NewServer(opts *config.StatusConfig, provider StatsProvider, logger *log.Logger) (*Server, error) {
	if opts == nil {
		return nil, fmt.Errorf("status server options cannot be nil")
	}
	if provider == nil {
		return nil, fmt.Errorf("status server requires a stats provider")
	}
	return &Server{
		config:   opts,
		provider: provider,
		logger:   logger,
	}, nil
}

// Start serves in the background until ctx is cancelled or Shutdown is
// called. A listen error within the first 100ms is returned.
func (s *Server) Start(ctx context.Context) error {
	s.server = &fasthttp.Server{
		Name:             fmt.Sprintf("loggen/%s", version.Short()),
		Handler:          s.requestHandler,
		DisableKeepalive: false,
		Logger:           compat.NewFastHTTPAdapter(s.logger),
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     5 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("msg", "Status server started",
			"component", "status_server",
			"address", addr,
			"status_path", s.config.StatusPath,
			"health_path", s.config.HealthPath)

		if err := s.server.ListenAndServe(addr); err != nil {
			errChan <- err
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("status server failed to listen on %s: %w", addr, err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Shutdown stops the listener, waiting at most two seconds for open requests.
func (s *Server) Shutdown() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.server.ShutdownWithContext(ctx); err != nil {
		s.logger.Warn("msg", "Status server shutdown error",
			"component", "status_server",
			"error", err)
	}
}

func (s *Server) requestHandler(ctx *fasthttp.RequestCtx) {
	s.totalRequests.Add(1)
	path := string(ctx.Path())

	s.logger.Debug("msg", "Status request",
		"component", "status_server",
		"method", string(ctx.Method()),
		"path", path,
		"remote_addr", ctx.RemoteAddr().String())

	if !ctx.IsGet() && !ctx.IsHead() {
		s.failedRequests.Add(1)
		ctx.Response.Header.Set("Allow", "GET, HEAD")
		s.writeJSON(ctx, fasthttp.StatusMethodNotAllowed, map[string]any{
			"error": "Method Not Allowed",
		})
		return
	}

	switch path {
	case s.config.StatusPath:
		s.handleStatus(ctx)
	case s.config.HealthPath:
		s.handleHealth(ctx)
	default:
		s.failedRequests.Add(1)
		s.writeJSON(ctx, fasthttp.StatusNotFound, map[string]any{
			"error":            "Not Found",
			"requested_path":   path,
			"available_routes": []string{s.config.StatusPath, s.config.HealthPath},
		})
	}
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"service":        "loggen",
		"version":        version.String(),
		"instance_id":    s.provider.InstanceID(),
		"uptime_seconds": int(s.provider.Uptime().Seconds()),
		"generators":     s.provider.GetGlobalStats(),
		"server": map[string]any{
			"total_requests":  s.totalRequests.Load(),
			"failed_requests": s.failedRequests.Load(),
		},
	})
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"status":      "ok",
		"instance_id": s.provider.InstanceID(),
	})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, code int, body any) {
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(code)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}
