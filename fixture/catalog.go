package fixture

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Fixture is one discovered input file.
type Fixture struct {
	Category string `json:"category"`
	Size     int    `json:"size"`
	Path     string `json:"path"`
	Rank     int    `json:"rank"`
	Label    string `json:"label"`
}

// Catalog scans a directory for fixtures.
type Catalog struct {
	Dir    string
	Layout *Layout
	Logger *slog.Logger
}

// NewCatalog creates a Catalog for dir.
func NewCatalog(dir string, layout *Layout, logger *slog.Logger) *Catalog {
	return &Catalog{
		Dir:    dir,
		Layout: layout,
		Logger: logger.With(slog.String("dir", dir)),
	}
}

// Fixtures scans the directory and returns every fixture ordered by category
// rank, then size. Entries whose names do not decode are skipped with a
// warning.
func (c *Catalog) Fixtures() ([]Fixture, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("read fixtures dir %s: %w", c.Dir, err)
	}

	ext := c.Layout.Extension()
	fixtures := make([]Fixture, 0, len(entries))

	for _, e := range entries {
		name := e.Name()
		if ext != "" && filepath.Ext(name) != ext {
			continue
		}

		if !c.regular(e) {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if ext == "" {
			stem = name
		}

		category, size, err := ParseName(stem)
		if err != nil {
			c.Logger.Warn("skipping fixture",
				slog.String("file", name),
				slog.String("error", err.Error()),
			)

			continue
		}

		if _, ok := c.Layout.Lookup(category); !ok {
			c.Logger.Warn("unknown fixture category, ordering it last",
				slog.String("file", name),
				slog.String("category", category),
			)
		}

		fixtures = append(fixtures, Fixture{
			Category: category,
			Size:     size,
			Path:     filepath.Join(c.Dir, name),
			Rank:     c.Layout.Rank(category),
			Label:    c.Layout.Label(category, size),
		})
	}

	Sort(fixtures)

	c.Logger.Debug("fixtures discovered", slog.Int("count", len(fixtures)))

	return fixtures, nil
}

// regular reports whether e is a regular file, following symlinks.
func (c *Catalog) regular(e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}

	if e.Type()&os.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(filepath.Join(c.Dir, e.Name()))
	if err != nil {
		c.Logger.Warn("skipping unreadable fixture link",
			slog.String("file", e.Name()),
			slog.String("error", err.Error()),
		)

		return false
	}

	return info.Mode().IsRegular()
}

// ParseName splits a fixture stem at its last underscore into category and
// element count.
func ParseName(stem string) (string, int, error) {
	pos := strings.LastIndexByte(stem, '_')
	if pos < 0 {
		return "", 0, fmt.Errorf("name %q has no <category>_<size> form", stem)
	}

	category := stem[:pos]
	if category == "" {
		return "", 0, fmt.Errorf("name %q has an empty category", stem)
	}

	size, err := strconv.Atoi(stem[pos+1:])
	if err != nil || size < 0 {
		return "", 0, fmt.Errorf("name %q has invalid size %q", stem, stem[pos+1:])
	}

	return category, size, nil
}

// Sort orders fixtures by (rank, size). Category and path break the
// remaining ties so aliases and unknown categories come out in a stable order.
func Sort(fixtures []Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		a, b := fixtures[i], fixtures[j]
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.Size != b.Size {
			return a.Size < b.Size
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}

		return a.Path < b.Path
	})
}
