// Package catalog holds the label and title data served by the stub backend.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownLabel is the vocabulary placeholder that is never returned to clients.
const UnknownLabel = "[UNK]"

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is the label vocabulary and paper titles the stub backend serves.
type Catalog struct {
	Labels []Label  `yaml:"labels"`
	Titles []string `yaml:"titles"`
}

// Label is a subject label and the keywords that vote for it.
type Label struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the catalog at path. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Validate reports whether the catalog can back both endpoints.
func (c *Catalog) Validate() error {
	if len(c.Labels) == 0 {
		return errors.New("catalog has no labels")
	}
	seen := make(map[string]struct{}, len(c.Labels))
	for i, l := range c.Labels {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return fmt.Errorf("catalog label %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate catalog label %q", name)
		}
		seen[name] = struct{}{}
	}
	if len(c.Titles) == 0 {
		return errors.New("catalog has no titles")
	}
	return nil
}
