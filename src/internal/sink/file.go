// FILE: loggen/src/internal/sink/file.go
package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/log"
)

// Appends lines to a single component file
type FileSink struct {
	directory string
	path      string
	logger    *log.Logger

	counters
}

// Creates a new file sink for <directory>/<name>
func NewFileSink(directory, name string, logger *log.Logger) (*FileSink, error) {
	if directory == "" {
		return nil, fmt.Errorf("file sink requires a directory")
	}
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid file name: %q", name)
	}

	fs := &FileSink{
		directory: directory,
		path:      filepath.Join(directory, name),
		logger:    logger,
	}
	fs.initCounters()
	return fs, nil
}

// Write opens the file in append mode, creating it and its directory if
// absent, and writes the line. The file is closed again after every write.
func (fs *FileSink) Write(line []byte) error {
	if err := fs.write(line); err != nil {
		fs.recordError()
		return err
	}
	fs.recordWrite()
	return nil
}

func (fs *FileSink) write(line []byte) error {
	if err := os.MkdirAll(fs.directory, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fs.directory, err)
	}

	f, err := os.OpenFile(fs.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fs.path, err)
	}

	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("failed to write to %s: %w", fs.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", fs.path, err)
	}
	return nil
}

func (fs *FileSink) Path() string {
	return fs.path
}

func (fs *FileSink) Name() string {
	return "file"
}

// Close is a no-op, the file is not held open between writes
func (fs *FileSink) Close() error {
	return nil
}

func (fs *FileSink) GetStats() SinkStats {
	return fs.stats("file", map[string]any{
		"path": fs.path,
	})
}
