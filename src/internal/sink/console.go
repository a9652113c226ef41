// FILE: loggen/src/internal/sink/console.go
package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lixenwraith/log"
)

// ConsoleSink echoes lines to stdout or stderr. It is shared by all
// generators; the mutex keeps lines from interleaving.
type ConsoleSink struct {
	target string
	output io.Writer
	mu     sync.Mutex
	logger *log.Logger

	counters
}

// NewConsoleSink creates a console sink for "stdout" or "stderr"
func NewConsoleSink(target string, logger *log.Logger) (*ConsoleSink, error) {
	var output io.Writer
	switch target {
	case "", "stdout":
		target = "stdout"
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		return nil, fmt.Errorf("invalid console target: %s", target)
	}

	return NewConsoleSinkWriter(target, output, logger), nil
}

// NewConsoleSinkWriter creates a console sink writing to an arbitrary writer
func NewConsoleSinkWriter(target string, output io.Writer, logger *log.Logger) *ConsoleSink {
	s := &ConsoleSink{
		target: target,
		output: output,
		logger: logger,
	}
	s.initCounters()
	return s
}

func (s *ConsoleSink) Write(line []byte) error {
	s.mu.Lock()
	_, err := s.output.Write(line)
	s.mu.Unlock()

	if err != nil {
		s.recordError()
		return fmt.Errorf("failed to write to %s: %w", s.target, err)
	}
	s.recordWrite()
	return nil
}

func (s *ConsoleSink) Name() string {
	return s.target
}

func (s *ConsoleSink) Close() error {
	return nil
}

func (s *ConsoleSink) GetStats() SinkStats {
	return s.stats("console", map[string]any{
		"target": s.target,
	})
}
