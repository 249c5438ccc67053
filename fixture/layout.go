// Package fixture discovers, loads and generates the integer lists the
// benchmark sorts. A fixture is a file named <category>_<size><ext> holding
// whitespace separated signed integers.
package fixture

import "strconv"

// Category describes one input distribution.
type Category struct {
	// Key is the canonical name used in file names.
	Key string
	// Aliases are alternative names accepted when scanning.
	Aliases []string
	// Label is the human readable name used in reports.
	Label string
}

// Layout is the immutable table that ranks and labels categories. The rank of
// a category is its position in the table.
type Layout struct {
	categories []Category
	index      map[string]int
	extension  string
}

// NewLayout builds a Layout from an ordered category list.
func NewLayout(extension string, categories ...Category) *Layout {
	l := &Layout{
		categories: make([]Category, len(categories)),
		index:      make(map[string]int, len(categories)),
		extension:  extension,
	}

	for i, c := range categories {
		c.Aliases = append([]string(nil), c.Aliases...)
		l.categories[i] = c
		l.index[c.Key] = i
		for _, a := range c.Aliases {
			l.index[a] = i
		}
	}

	return l
}

// DefaultLayout returns the category order reversed < sorted < nearly sorted
// < random < flat, with the file naming and labels of the legacy reports.
func DefaultLayout() *Layout {
	return NewLayout(".csv",
		Category{Key: "inversat", Aliases: []string{"reversed"}, Label: "Inversat"},
		Category{Key: "sortat", Aliases: []string{"sorted"}, Label: "Sortat"},
		Category{
			Key:     "aproape_sortat",
			Aliases: []string{"nearly_sorted", "nearly-sorted"},
			Label:   "Aproape sortat",
		},
		Category{Key: "aleator", Aliases: []string{"random"}, Label: "Aleator"},
		Category{Key: "plat", Aliases: []string{"flat"}, Label: "Plat"},
	)
}

// WithExtension returns a copy of l that scans for a different extension.
func (l *Layout) WithExtension(ext string) *Layout {
	return NewLayout(ext, l.categories...)
}

// Extension is the file extension, including the dot, fixtures carry.
func (l *Layout) Extension() string { return l.extension }

// Categories returns the categories in rank order.
func (l *Layout) Categories() []Category {
	out := make([]Category, len(l.categories))
	for i, c := range l.categories {
		c.Aliases = append([]string(nil), c.Aliases...)
		out[i] = c
	}

	return out
}

// Lookup resolves a category key or alias.
func (l *Layout) Lookup(name string) (Category, bool) {
	i, ok := l.index[name]
	if !ok {
		return Category{}, false
	}

	return l.categories[i], true
}

// Rank returns the ordering rank of a category. Unknown categories rank
// after every known one.
func (l *Layout) Rank(name string) int {
	if i, ok := l.index[name]; ok {
		return i
	}

	return len(l.categories)
}

// Label returns the report label for a category and size.
func (l *Layout) Label(name string, size int) string {
	display := name
	if c, ok := l.Lookup(name); ok {
		display = c.Label
	}

	return display + " " + strconv.Itoa(size)
}
