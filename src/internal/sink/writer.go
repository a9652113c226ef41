// FILE: loggen/src/internal/sink/writer.go
package sink

import (
	"github.com/lixenwraith/log"
)

// Writer delivers a component's lines to its file first and then to the
// mirrors. Only file failures are reported to the caller.
type Writer struct {
	component string
	file      *FileSink
	mirrors   []Sink
	logger    *log.Logger
}

// NewWriter creates a writer for one component.
func NewWriter(component string, file *FileSink, mirrors []Sink, logger *log.Logger) *Writer {
	return &Writer{
		component: component,
		file:      file,
		mirrors:   mirrors,
		logger:    logger,
	}
}

// Write appends the line to the component file and mirrors it. A line that
// could not be persisted is not mirrored.
func (w *Writer) Write(line []byte) error {
	if err := w.file.Write(line); err != nil {
		return err
	}

	for _, m := range w.mirrors {
		if err := m.Write(line); err != nil {
			w.logger.Warn("msg", "Mirror write failed",
				"component", "writer",
				"source", w.component,
				"sink", m.Name(),
				"error", err)
		}
	}
	return nil
}

// Path returns the component file path.
func (w *Writer) Path() string {
	return w.file.Path()
}

// FileStats returns the statistics of the component file.
func (w *Writer) FileStats() SinkStats {
	return w.file.GetStats()
}
