package fixture

import (
	"bufio"
	"fmt"
	"io"
	mrand "math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultSizes are the element counts the stock corpus is generated with.
var DefaultSizes = []int{100, 10_000, 100_000, 400_000, 1_000_000, 10_000_000}

// GenConfig controls fixture generation.
type GenConfig struct {
	Dir        string
	Sizes      []int
	Categories []string
	Seed       int64
	// Swaps is the fraction of positions disturbed in nearly sorted lists.
	Swaps float64
	// Distinct is the number of distinct values in flat lists.
	Distinct int
	// MaxValue bounds random lists to [0, MaxValue).
	MaxValue int64
}

// GenSummary contains statistics about a generation run.
type GenSummary struct {
	Files    []string
	Elements int
}

// Generator writes deterministic fixtures from a GenConfig.
type Generator struct {
	cfg    GenConfig
	layout *Layout
	rng    *mrand.Rand
}

// NewGenerator creates a Generator. Zero valued tuning fields fall back to
// the stock corpus settings.
func NewGenerator(cfg GenConfig, layout *Layout) *Generator {
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = DefaultSizes
	}
	if len(cfg.Categories) == 0 {
		for _, c := range layout.Categories() {
			cfg.Categories = append(cfg.Categories, c.Key)
		}
	}
	if cfg.Swaps == 0 {
		cfg.Swaps = 0.05
	}
	if cfg.Distinct == 0 {
		cfg.Distinct = 20
	}
	if cfg.MaxValue == 0 {
		cfg.MaxValue = 1_000_000_000
	}

	return &Generator{
		cfg:    cfg,
		layout: layout,
		rng:    mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// distribution produces n values of one input shape.
type distribution func(g *Generator, n int) []int64

// distributions maps category names, canonical or alias, to their shape.
var distributions = map[string]distribution{
	"inversat":       (*Generator).descending,
	"reversed":       (*Generator).descending,
	"sortat":         (*Generator).ascending,
	"sorted":         (*Generator).ascending,
	"aproape_sortat": (*Generator).nearlySorted,
	"nearly_sorted":  (*Generator).nearlySorted,
	"nearly-sorted":  (*Generator).nearlySorted,
	"aleator":        (*Generator).random,
	"random":         (*Generator).random,
	"plat":           (*Generator).flat,
	"flat":           (*Generator).flat,
}

// distributionFor resolves the shape of c from its key, then its aliases.
func distributionFor(c Category) (distribution, error) {
	if dist, ok := distributions[c.Key]; ok {
		return dist, nil
	}

	for _, alias := range c.Aliases {
		if dist, ok := distributions[alias]; ok {
			return dist, nil
		}
	}

	return nil, fmt.Errorf("no distribution for category %q", c.Key)
}

// Generate writes one file per (category, size) pair into the configured
// directory. Every category and size is validated before anything is written.
func (g *Generator) Generate() (GenSummary, error) {
	var summary GenSummary

	categories := make([]Category, 0, len(g.cfg.Categories))
	dists := make([]distribution, 0, len(g.cfg.Categories))

	for _, name := range g.cfg.Categories {
		category, ok := g.layout.Lookup(name)
		if !ok {
			return summary, fmt.Errorf("unknown category %q", name)
		}

		dist, err := distributionFor(category)
		if err != nil {
			return summary, err
		}

		categories = append(categories, category)
		dists = append(dists, dist)
	}

	for _, n := range g.cfg.Sizes {
		if n < 0 {
			return summary, fmt.Errorf("invalid size %d", n)
		}
	}

	if err := os.MkdirAll(g.cfg.Dir, 0o755); err != nil {
		return summary, fmt.Errorf("create fixtures dir %s: %w", g.cfg.Dir, err)
	}

	for i, category := range categories {
		for _, n := range g.cfg.Sizes {
			path := filepath.Join(g.cfg.Dir,
				category.Key+"_"+strconv.Itoa(n)+g.layout.Extension())
			if err := writeFile(path, dists[i](g, n)); err != nil {
				return summary, err
			}

			summary.Files = append(summary.Files, path)
			summary.Elements += n
		}
	}

	return summary, nil
}

func (g *Generator) ascending(n int) []int64 {
	v := make([]int64, n)
	for i := range v {
		v[i] = int64(i)
	}

	return v
}

func (g *Generator) descending(n int) []int64 {
	v := make([]int64, n)
	for i := range v {
		v[i] = int64(n - 1 - i)
	}

	return v
}

func (g *Generator) nearlySorted(n int) []int64 {
	v := g.ascending(n)

	k := int(float64(n) * g.cfg.Swaps)
	if k == 0 {
		return v
	}

	// Unique source positions, destinations drawn with replacement.
	src := g.rng.Perm(n)[:k]
	for _, i := range src {
		j := g.rng.Intn(n)
		v[i], v[j] = v[j], v[i]
	}

	return v
}

func (g *Generator) random(n int) []int64 {
	v := make([]int64, n)
	for i := range v {
		v[i] = g.rng.Int63n(g.cfg.MaxValue)
	}

	return v
}

func (g *Generator) flat(n int) []int64 {
	v := make([]int64, n)
	for i := range v {
		v[i] = int64(g.rng.Intn(g.cfg.Distinct))
	}

	return v
}

func writeFile(path string, values []int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture %s: %w", path, err)
	}

	if err := Encode(f, values); err != nil {
		f.Close()

		return fmt.Errorf("write fixture %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close fixture %s: %w", path, err)
	}

	return nil
}

// Encode writes values to w, one per line.
func Encode(w io.Writer, values []int64) error {
	bw := bufio.NewWriterSize(w, 1<<16)

	var buf []byte
	for _, v := range values {
		buf = strconv.AppendInt(buf[:0], v, 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}
