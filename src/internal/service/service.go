// FILE: loggen/src/internal/service/service.go
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"loggen/src/internal/catalog"
	"loggen/src/internal/config"
	"loggen/src/internal/sink"

	"github.com/google/uuid"
	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// Service supervises one generator loop per configured component.
type Service struct {
	config     *config.Config
	catalog    *catalog.Catalog
	instanceID string

	components []*Component
	mirrors    []sink.Sink
	tcp        *sink.TCPSink
	limiter    *rate.Limiter

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	started   atomic.Bool
	stopOnce  sync.Once
	startTime time.Time
	logger    *log.Logger
}

// New builds the generators for every configured component without starting
// them. An empty component list selects the whole catalog.
func New(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, logger *log.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("service configuration cannot be nil")
	}
	if cat == nil {
		return nil, fmt.Errorf("service catalog cannot be nil")
	}
	if cfg.Generator.Seed < 0 {
		return nil, fmt.Errorf("generator seed must not be negative: %d", cfg.Generator.Seed)
	}

	serviceCtx, cancel := context.WithCancel(ctx)
	s := &Service{
		config:     cfg,
		catalog:    cat,
		instanceID: uuid.NewString(),
		ctx:        serviceCtx,
		cancel:     cancel,
		logger:     logger,
	}

	names, err := s.selectComponents()
	if err != nil {
		cancel()
		return nil, err
	}

	if err := s.createMirrors(); err != nil {
		cancel()
		return nil, err
	}

	if g := cfg.Generator; g.MaxEntriesPerSecond > 0 {
		burst := int(g.Burst)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(g.MaxEntriesPerSecond), burst)
	}

	for i, name := range names {
		comp, err := s.newComponent(i, name)
		if err != nil {
			s.closeMirrors()
			cancel()
			return nil, fmt.Errorf("failed to create component '%s': %w", name, err)
		}
		s.components = append(s.components, comp)
	}

	s.logger.Debug("msg", "Service created",
		"component", "service",
		"instance_id", s.instanceID,
		"generators", len(s.components))
	return s, nil
}

// selectComponents resolves the configured names against the catalog.
func (s *Service) selectComponents() ([]string, error) {
	if len(s.config.Components) == 0 {
		return s.catalog.Names(), nil
	}

	seen := make(map[string]bool, len(s.config.Components))
	names := make([]string, 0, len(s.config.Components))
	for _, name := range s.config.Components {
		if _, ok := s.catalog.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown component '%s'", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("component '%s' listed more than once", name)
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// createMirrors builds the sinks shared by every component writer.
func (s *Service) createMirrors() error {
	if s.config.Console != nil && s.config.Console.Enabled {
		console, err := sink.NewConsoleSink(s.config.Console.Target, s.logger)
		if err != nil {
			return fmt.Errorf("failed to create console sink: %w", err)
		}
		s.mirrors = append(s.mirrors, console)
	}

	if s.config.TCP != nil && s.config.TCP.Enabled {
		tcp, err := sink.NewTCPSink(s.config.TCP, s.logger)
		if err != nil {
			return fmt.Errorf("failed to create TCP sink: %w", err)
		}
		s.tcp = tcp
		s.mirrors = append(s.mirrors, tcp)
	}
	return nil
}

// Start launches every generator in its own goroutine and returns.
func (s *Service) Start() error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("service already started")
	}
	s.startTime = time.Now()

	if s.tcp != nil {
		if err := s.tcp.Start(s.ctx); err != nil {
			return fmt.Errorf("failed to start TCP sink: %w", err)
		}
	}

	for _, comp := range s.components {
		s.wg.Add(1)
		go s.runComponent(comp)
	}

	s.logger.Info("msg", "Service started",
		"component", "service",
		"instance_id", s.instanceID,
		"generators", len(s.components))
	return nil
}

// runComponent runs one generator and contains any panic to that component.
func (s *Service) runComponent(comp *Component) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("msg", "Panic in generator loop",
				"component", "service",
				"source", comp.Name,
				"panic", r)
		}
	}()

	if err := comp.Generator.Run(s.ctx); err != nil {
		s.logger.Error("msg", "Generator exited with error",
			"component", "service",
			"source", comp.Name,
			"error", err)
	}
}

// Shutdown stops all generators, waits for them to return and closes the
// shared sinks. Safe to call more than once.
func (s *Service) Shutdown() {
	s.stopOnce.Do(func() {
		s.logger.Info("msg", "Service shutdown initiated", "component", "service")

		s.cancel()
		s.wg.Wait()
		s.closeMirrors()

		s.logger.Info("msg", "Service shutdown complete", "component", "service")
	})
}

func (s *Service) closeMirrors() {
	for _, m := range s.mirrors {
		if err := m.Close(); err != nil {
			s.logger.Warn("msg", "Failed to close sink",
				"component", "service",
				"sink", m.Name(),
				"error", err)
		}
	}
}

// Components returns the supervised components in start order.
func (s *Service) Components() []*Component {
	return append([]*Component(nil), s.components...)
}

// InstanceID identifies this process run.
func (s *Service) InstanceID() string {
	return s.instanceID
}

// Uptime is the time since Start, zero before.
func (s *Service) Uptime() time.Duration {
	if !s.started.Load() {
		return 0
	}
	return time.Since(s.startTime)
}

// GetGlobalStats returns statistics for all generators and shared sinks.
func (s *Service) GetGlobalStats() map[string]any {
	generators := make(map[string]any, len(s.components))
	var totalWritten, totalFailed uint64
	for _, comp := range s.components {
		st := comp.GetStats()
		generators[comp.Name] = st
		totalWritten += st["total_written"].(uint64)
		totalFailed += st["total_failed"].(uint64)
	}

	mirrors := make([]map[string]any, 0, len(s.mirrors))
	for _, m := range s.mirrors {
		mirrors = append(mirrors, sinkStatsMap(m.GetStats()))
	}

	return map[string]any{
		"instance_id":      s.instanceID,
		"uptime_seconds":   int(s.Uptime().Seconds()),
		"total_generators": len(s.components),
		"total_written":    totalWritten,
		"total_failed":     totalFailed,
		"generators":       generators,
		"mirrors":          mirrors,
	}
}
