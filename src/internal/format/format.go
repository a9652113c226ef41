// FILE: loggen/src/internal/format/format.go
package format

import (
	"fmt"

	"loggen/src/internal/config"
	"loggen/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for transforming a LogEntry into a single line.
type Formatter interface {
	// Format takes a LogEntry and returns the newline-terminated line.
	Format(entry core.LogEntry) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// NewFormatter creates a new Formatter based on the component's output format.
func NewFormatter(name string, opts *config.FormatConfig, logger *log.Logger) (Formatter, error) {
	if opts == nil {
		opts = config.DefaultFormatConfig()
	}

	// Default to txt if no format specified
	if name == "" {
		name = core.FormatText
	}

	switch name {
	case core.FormatJSON:
		return NewJSONFormatter(opts, logger)
	case core.FormatText:
		return NewTxtFormatter(opts, logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}
