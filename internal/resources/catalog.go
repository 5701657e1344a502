// Package resources serves the self-help resource hub from an embedded
// YAML catalog.
package resources

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

var ErrUnknownCategory = errors.New("unknown resource category")

// Resource is one item in the hub
type Resource struct {
	Title   string `yaml:"title" json:"title"`
	Kind    string `yaml:"kind" json:"kind"`
	Length  string `yaml:"length" json:"length,omitempty"`
	Summary string `yaml:"summary" json:"summary"`
	URL     string `yaml:"url" json:"url,omitempty"`
}

// Category groups resources under a topic
type Category struct {
	Slug        string     `yaml:"slug" json:"slug"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Resources   []Resource `yaml:"resources" json:"resources"`
}

// Catalog is the parsed resource hub
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Parse decodes a YAML catalog and rejects duplicate or empty slugs.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse resource catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Slug == "" {
			return nil, fmt.Errorf("resource category %q has no slug", cat.Title)
		}
		if seen[cat.Slug] {
			return nil, fmt.Errorf("duplicate resource category %q", cat.Slug)
		}
		seen[cat.Slug] = true
	}
	return &c, nil
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns every category, or only the named one.
func (c *Catalog) List(slug string) ([]Category, error) {
	if slug == "" {
		return c.Categories, nil
	}
	for _, cat := range c.Categories {
		if cat.Slug == slug {
			return []Category{cat}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, slug)
}
