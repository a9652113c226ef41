// FILE: loggen/src/internal/sink/sink.go
package sink

import (
	"sync/atomic"
	"time"
)

// Sink represents an output destination for formatted lines
type Sink interface {
	// Write delivers one newline-terminated line
	Write(line []byte) error

	// Name identifies the sink in logs and statistics
	Name() string

	// Close releases the sink's resources
	Close() error

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type              string
	TotalWritten      uint64
	TotalErrors       uint64
	ActiveConnections int64
	StartTime         time.Time
	LastWritten       time.Time
	Details           map[string]any
}

// counters is embedded by sinks for the common statistics
type counters struct {
	startTime    time.Time
	totalWritten atomic.Uint64
	totalErrors  atomic.Uint64
	lastWritten  atomic.Value // time.Time
}

func (c *counters) initCounters() {
	c.startTime = time.Now()
	c.lastWritten.Store(time.Time{})
}

func (c *counters) recordWrite() {
	c.totalWritten.Add(1)
	c.lastWritten.Store(time.Now())
}

func (c *counters) recordError() {
	c.totalErrors.Add(1)
}

func (c *counters) stats(sinkType string, details map[string]any) SinkStats {
	last, _ := c.lastWritten.Load().(time.Time)
	return SinkStats{
		Type:         sinkType,
		TotalWritten: c.totalWritten.Load(),
		TotalErrors:  c.totalErrors.Load(),
		StartTime:    c.startTime,
		LastWritten:  last,
		Details:      details,
	}
}
