// FILE: loggen/src/internal/catalog/catalog.go
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"loggen/src/internal/core"
)

// Every entry is written as exactly one line
const lineBreaks = "\r\n"

// Component describes one synthetic log source.
type Component struct {
	Name     string   `yaml:"name"`
	File     string   `yaml:"file"`
	Format   string   `yaml:"format"`
	Messages []string `yaml:"messages"`
}

// Catalog is an immutable set of components and the severity levels they draw from.
// All accessors return copies.
type Catalog struct {
	levels     []string
	components []Component
	index      map[string]int
}

// New validates the given definitions and builds a catalog from copies of them.
func New(levels []string, components []Component) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("catalog has no severity levels")
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("catalog has no components")
	}

	c := &Catalog{
		levels:     make([]string, 0, len(levels)),
		components: make([]Component, 0, len(components)),
		index:      make(map[string]int, len(components)),
	}

	for i, level := range levels {
		if strings.TrimSpace(level) == "" {
			return nil, fmt.Errorf("level[%d]: empty level", i)
		}
		if strings.ContainsAny(level, lineBreaks) {
			return nil, fmt.Errorf("level[%d]: contains a line break", i)
		}
		c.levels = append(c.levels, level)
	}

	for i, comp := range components {
		if comp.Name == "" {
			return nil, fmt.Errorf("component[%d]: missing name", i)
		}
		if _, exists := c.index[comp.Name]; exists {
			return nil, fmt.Errorf("component[%d]: duplicate name '%s'", i, comp.Name)
		}
		if strings.ContainsAny(comp.Name, lineBreaks+" \t") {
			return nil, fmt.Errorf("component[%d]: name %q must be a single word", i, comp.Name)
		}
		if len(comp.Messages) == 0 {
			return nil, fmt.Errorf("component '%s': no messages", comp.Name)
		}
		for j, msg := range comp.Messages {
			if strings.ContainsAny(msg, lineBreaks) {
				return nil, fmt.Errorf("component '%s': message[%d] contains a line break", comp.Name, j)
			}
		}

		if comp.File == "" {
			comp.File = comp.Name + ".log"
		}
		if filepath.Base(comp.File) != comp.File || comp.File == "." || comp.File == ".." {
			return nil, fmt.Errorf("component '%s': file name '%s' must not contain path separators", comp.Name, comp.File)
		}

		switch comp.Format {
		case "":
			comp.Format = core.FormatText
		case core.FormatText, core.FormatJSON:
		default:
			return nil, fmt.Errorf("component '%s': invalid format '%s' (must be 'txt' or 'json')", comp.Name, comp.Format)
		}

		comp.Messages = append([]string(nil), comp.Messages...)
		c.index[comp.Name] = len(c.components)
		c.components = append(c.components, comp)
	}

	return c, nil
}

// Levels returns the severity levels.
func (c *Catalog) Levels() []string {
	return append([]string(nil), c.levels...)
}

// Components returns all components in definition order.
func (c *Catalog) Components() []Component {
	out := make([]Component, len(c.components))
	for i, comp := range c.components {
		out[i] = comp.clone()
	}
	return out
}

// Names returns the component names in definition order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.components))
	for i, comp := range c.components {
		names[i] = comp.Name
	}
	return names
}

// Lookup returns the named component.
func (c *Catalog) Lookup(name string) (Component, bool) {
	i, ok := c.index[name]
	if !ok {
		return Component{}, false
	}
	return c.components[i].clone(), true
}

func (comp Component) clone() Component {
	comp.Messages = append([]string(nil), comp.Messages...)
	return comp
}
