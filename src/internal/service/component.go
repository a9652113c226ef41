// FILE: loggen/src/internal/service/component.go
package service

import (
	"fmt"

	"loggen/src/internal/format"
	"loggen/src/internal/generator"
	"loggen/src/internal/sink"
)

// Component binds a catalog component to its generator and output file.
type Component struct {
	Name      string
	Format    string
	Generator *generator.Generator
	Writer    *sink.Writer
}

// newComponent wires formatter, file sink, writer and generator for the
// component at position index.
func (s *Service) newComponent(index int, name string) (*Component, error) {
	entry, ok := s.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("component not in catalog")
	}

	formatter, err := format.NewFormatter(entry.Format, s.config.Format, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	file, err := sink.NewFileSink(s.config.LogDir, entry.File, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file sink: %w", err)
	}
	writer := sink.NewWriter(name, file, s.mirrors, s.logger)

	// A fixed seed gives each component its own reproducible stream. Seeds
	// are validated non-negative, so seed+index never wraps to the random 0.
	var seed uint64
	if s.config.Generator.Seed != 0 {
		seed = uint64(s.config.Generator.Seed) + uint64(index)
	}

	gen, err := generator.New(generator.Settings{
		Component: entry,
		Levels:    s.catalog.Levels(),
		MinDelay:  s.config.MinDelay(),
		MaxDelay:  s.config.MaxDelay(),
		Seed:      seed,
	}, generator.Deps{
		Formatter: formatter,
		Writer:    writer,
		Limiter:   s.limiter,
		Logger:    s.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Component{
		Name:      name,
		Format:    formatter.Name(),
		Generator: gen,
		Writer:    writer,
	}, nil
}

// Path returns the component's output file.
func (c *Component) Path() string {
	return c.Writer.Path()
}

// GetStats returns generator and file statistics.
func (c *Component) GetStats() map[string]any {
	gs := c.Generator.GetStats()
	return map[string]any{
		"name":            c.Name,
		"format":          c.Format,
		"path":            gs.Path,
		"state":           gs.State.String(),
		"total_generated": gs.TotalGenerated,
		"total_written":   gs.TotalWritten,
		"total_failed":    gs.TotalFailed,
		"last_entry":      gs.LastEntry,
		"file":            sinkStatsMap(c.Writer.FileStats()),
	}
}

func sinkStatsMap(stats sink.SinkStats) map[string]any {
	return map[string]any{
		"type":               stats.Type,
		"total_written":      stats.TotalWritten,
		"total_errors":       stats.TotalErrors,
		"active_connections": stats.ActiveConnections,
		"start_time":         stats.StartTime,
		"last_written":       stats.LastWritten,
		"details":            stats.Details,
	}
}
