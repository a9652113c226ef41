// FILE: loggen/src/internal/service/directory.go
package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// EnsureLogDirectory creates dir and any missing parents. It reports whether
// the directory was created by this call; an existing directory is not an
// error.
func EnsureLogDirectory(dir string) (bool, error) {
	if dir == "" {
		return false, fmt.Errorf("log directory cannot be empty")
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, fmt.Errorf("log directory %s exists and is not a directory", dir)
		}
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("failed to stat log directory %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return true, nil
}
