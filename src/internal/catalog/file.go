// FILE: loggen/src/internal/catalog/file.go
package catalog

import (
	"fmt"
	"os"

	"loggen/src/internal/core"

	"gopkg.in/yaml.v3"
)

type fileCatalog struct {
	Levels     []string    `yaml:"levels"`
	Components []Component `yaml:"components"`
}

// LoadFile reads a catalog from a YAML document. When the document omits
// levels, the built-in severity set is used.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	levels := fc.Levels
	if len(levels) == 0 {
		levels = core.Levels()
	}

	c, err := New(levels, fc.Components)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}
