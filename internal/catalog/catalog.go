// Package catalog holds the read-only collection of case studies.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
)

// ErrNotFound is returned when no case has the requested title.
var ErrNotFound = errors.New("case not found")

//go:embed cases.yaml
var defaultCases []byte

// Catalog is an immutable, ordered set of case records keyed by title.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	records []models.CaseRecord
	byTitle map[string]int
}

// New builds a catalog from records, preserving their order. Every field must
// be non-empty and titles must be unique.
func New(records ...models.CaseRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one case")
	}

	c := &Catalog{
		records: make([]models.CaseRecord, len(records)),
		byTitle: make(map[string]int, len(records)),
	}
	copy(c.records, records)

	for i, r := range c.records {
		if field := r.MissingField(); field != "" {
			return nil, fmt.Errorf("case %d (%q): %s must not be empty", i, r.Title, field)
		}
		if prev, dup := c.byTitle[r.Title]; dup {
			return nil, fmt.Errorf("case %d: duplicate title %q (first seen at %d)", i, r.Title, prev)
		}
		c.byTitle[r.Title] = i
	}

	return c, nil
}

type catalogFile struct {
	Cases []models.CaseRecord `yaml:"cases"`
}

// Parse decodes a YAML catalog document into a Catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Cases...)
}

// Default returns the built-in case studies.
func Default() (*Catalog, error) {
	return Parse(defaultCases)
}

// ListTitles returns every title in insertion order.
func (c *Catalog) ListTitles() []string {
	titles := make([]string, len(c.records))
	for i, r := range c.records {
		titles[i] = r.Title
	}
	return titles
}

// GetByTitle returns the case whose title matches exactly.
func (c *Catalog) GetByTitle(title string) (models.CaseRecord, error) {
	i, ok := c.byTitle[title]
	if !ok {
		return models.CaseRecord{}, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return c.records[i], nil
}

// All returns a copy of every record in order.
func (c *Catalog) All() []models.CaseRecord {
	out := make([]models.CaseRecord, len(c.records))
	copy(out, c.records)
	return out
}

// First returns the case preselected when nothing has been chosen yet.
func (c *Catalog) First() models.CaseRecord {
	return c.records[0]
}

func (c *Catalog) Len() int {
	return len(c.records)
}
