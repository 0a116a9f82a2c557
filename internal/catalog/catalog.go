// Package catalog loads the configured interconnection points and composites.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
)

//go:embed default.yaml
var defaultCatalog []byte

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the validated set of points and composites, keyed by point ID.
type Catalog struct {
	Points     []models.PointDefinition     `yaml:"points"`
	Composites []models.CompositeDefinition `yaml:"composites"`

	byID map[string]models.PointDefinition
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path returns the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Points) == 0 {
		return fmt.Errorf("%w: no points configured", ErrInvalidCatalog)
	}

	c.byID = make(map[string]models.PointDefinition, len(c.Points))
	for i, p := range c.Points {
		if p.ID == "" {
			return fmt.Errorf("%w: point %d has no id", ErrInvalidCatalog, i+1)
		}
		if _, dup := c.byID[p.ID]; dup {
			return fmt.Errorf("%w: duplicate point %q", ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = p
	}

	names := make(map[string]struct{}, len(c.Composites))
	for _, comp := range c.Composites {
		if comp.Name == "" {
			return fmt.Errorf("%w: composite without a name", ErrInvalidCatalog)
		}
		if _, dup := names[comp.Name]; dup {
			return fmt.Errorf("%w: duplicate composite %q", ErrInvalidCatalog, comp.Name)
		}
		names[comp.Name] = struct{}{}

		if len(comp.Members) < 2 {
			return fmt.Errorf("%w: composite %q needs at least two members", ErrInvalidCatalog, comp.Name)
		}
		for _, m := range comp.Members {
			if _, ok := c.byID[m]; !ok {
				return fmt.Errorf("%w: composite %q: %w", ErrInvalidCatalog, comp.Name, &series.UnknownSeriesError{Name: m})
			}
		}
	}
	return nil
}

// Point returns the definition for id.
func (c *Catalog) Point(id string) (models.PointDefinition, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// IDs returns the point IDs in configured order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Points))
	for i, p := range c.Points {
		ids[i] = p.ID
	}
	return ids
}

// Label returns the display name for id, or id itself if it is unknown.
func (c *Catalog) Label(id string) string {
	if p, ok := c.byID[id]; ok {
		return p.Label()
	}
	return id
}
