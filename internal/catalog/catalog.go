// Package catalog holds the static food catalog and the draw engine that
// samples from it.
package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"mealgacha/assets"
	"mealgacha/internal/core"
)

// Catalog is the read-only set of FoodItem entries, partitioned by mode.
// Loaded once at process start and never mutated afterwards.
type Catalog struct {
	items  []core.FoodItem
	byMode map[core.Mode][]core.FoodItem
}

// Load reads the embedded default catalog.
func Load() (*Catalog, error) {
	return LoadFrom(assets.CatalogFS, assets.CatalogPath)
}

// LoadFromFile reads a catalog from a path on disk, for local overrides.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return parse(data)
}

// LoadFrom reads a catalog from an fs.FS, mainly for tests.
func LoadFrom(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var items []core.FoodItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		items:  items,
		byMode: make(map[core.Mode][]core.FoodItem),
	}
	for i, item := range items {
		if item.Name == "" {
			return nil, fmt.Errorf("catalog item %d: %w", i, core.ErrEmptyDish)
		}
		if !item.Mode.Valid() {
			return nil, fmt.Errorf("catalog item %d (%s): %w", i, item.Name, core.ErrInvalidMode)
		}
		if item.Calories < 0 {
			return nil, fmt.Errorf("catalog item %d (%s): %w", i, item.Name, core.ErrInvalidCalories)
		}
		c.byMode[item.Mode] = append(c.byMode[item.Mode], item)
	}

	// An empty candidate set would make a whole mode undrawable. That is
	// a configuration error and must fail the load, not a later draw.
	for _, mode := range []core.Mode{core.ModeDisciplined, core.ModeIndulgent} {
		if len(c.byMode[mode]) == 0 {
			return nil, fmt.Errorf("mode %s: %w", mode, core.ErrNoCandidates)
		}
	}

	return c, nil
}

// Len returns the total number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// ByMode returns the candidate set for a mode. The returned slice is a
// copy; callers cannot mutate catalog state through it.
func (c *Catalog) ByMode(mode core.Mode) []core.FoodItem {
	return append([]core.FoodItem(nil), c.byMode[mode]...)
}
