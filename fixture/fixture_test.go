package fixture

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func TestParseName(t *testing.T) {
	tests := []struct {
		stem     string
		category string
		size     int
		wantErr  bool
	}{
		{stem: "sortat_10", category: "sortat", size: 10},
		{stem: "aproape_sortat_400000", category: "aproape_sortat", size: 400000},
		{stem: "nearly-sorted_0", category: "nearly-sorted", size: 0},
		{stem: "sortat", wantErr: true},
		{stem: "_10", wantErr: true},
		{stem: "sortat_", wantErr: true},
		{stem: "sortat_ten", wantErr: true},
		{stem: "sortat_-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			category, size, err := ParseName(tt.stem)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.size, size)
		})
	}
}

func TestLayoutRankAndLabel(t *testing.T) {
	l := DefaultLayout()

	assert.Equal(t, 0, l.Rank("inversat"))
	assert.Equal(t, 0, l.Rank("reversed"))
	assert.Equal(t, 1, l.Rank("sorted"))
	assert.Equal(t, 2, l.Rank("nearly-sorted"))
	assert.Equal(t, 3, l.Rank("aleator"))
	assert.Equal(t, 4, l.Rank("flat"))
	assert.Equal(t, 5, l.Rank("zigzag"))

	assert.Equal(t, "Sortat 10", l.Label("sorted", 10))
	assert.Equal(t, "Aproape sortat 100", l.Label("aproape_sortat", 100))
	assert.Equal(t, "zigzag 7", l.Label("zigzag", 7))
}

func TestLayoutIsImmutable(t *testing.T) {
	l := DefaultLayout()

	cats := l.Categories()
	cats[0].Label = "changed"
	cats[0].Aliases[0] = "changed"

	c, ok := l.Lookup("inversat")
	require.True(t, ok)
	assert.Equal(t, "Inversat", c.Label)
	assert.Equal(t, []string{"reversed"}, c.Aliases)

	_, ok = l.Lookup("reversed")
	assert.True(t, ok)
}

func TestCatalogOrdering(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"plat_100.csv":         "1 1 1",
		"aleator_5.csv":        "5 3 1 4 2",
		"sorted_10.csv":        "1 2 3 4 5 6 7 8 9 10",
		"sortat_2.csv":         "1 2",
		"inversat_1000.csv":    "3 2 1",
		"aproape_sortat_7.csv": "1 3 2",
		"zigzag_1.csv":         "1",
		"ignored.txt":          "1 2 3",
	})

	fixtures, err := NewCatalog(dir, DefaultLayout(), discardLogger()).Fixtures()
	require.NoError(t, err)

	var labels []string
	for _, f := range fixtures {
		labels = append(labels, f.Label)
	}

	assert.Equal(t, []string{
		"Inversat 1000",
		"Sortat 2",
		"Sortat 10",
		"Aproape sortat 7",
		"Aleator 5",
		"Plat 100",
		"zigzag 1",
	}, labels)

	for i := 1; i < len(fixtures); i++ {
		a, b := fixtures[i-1], fixtures[i]
		assert.True(t, a.Rank < b.Rank || (a.Rank == b.Rank && a.Size <= b.Size),
			"%s before %s", a.Label, b.Label)
	}

	assert.Equal(t, filepath.Join(dir, "sorted_10.csv"), fixtures[2].Path)
}

func TestCatalogSkipsMalformedNames(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"sortat_10.csv":  "1",
		"sortat.csv":     "1",
		"sortat_abc.csv": "1",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "aleator_5.csv"), 0o755))

	fixtures, err := NewCatalog(dir, DefaultLayout(), discardLogger()).Fixtures()
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, "sortat", fixtures[0].Category)
}

func TestCatalogFollowsSymlinks(t *testing.T) {
	src := writeFixtures(t, map[string]string{"data.txt": "3 1 2"})
	subdir := filepath.Join(src, "sub")
	require.NoError(t, os.Mkdir(subdir, 0o755))

	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(src, "data.txt"), filepath.Join(dir, "sortat_3.csv")))
	require.NoError(t, os.Symlink(subdir, filepath.Join(dir, "aleator_4.csv")))
	require.NoError(t, os.Symlink(filepath.Join(src, "gone.txt"), filepath.Join(dir, "plat_2.csv")))

	fixtures, err := NewCatalog(dir, DefaultLayout(), discardLogger()).Fixtures()
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, "Sortat 3", fixtures[0].Label)
	assert.Equal(t, filepath.Join(dir, "sortat_3.csv"), fixtures[0].Path)

	values, err := Load(fixtures[0].Path)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, values)
}

func TestCatalogEmptyExtensionAcceptsAll(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"sortat_10": "1",
		"plat_3":    "1",
	})

	fixtures, err := NewCatalog(dir, DefaultLayout().WithExtension(""), discardLogger()).Fixtures()
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, "Sortat 10", fixtures[0].Label)
	assert.Equal(t, "Plat 3", fixtures[1].Label)
}

func TestCatalogEmptyDir(t *testing.T) {
	fixtures, err := NewCatalog(t.TempDir(), DefaultLayout(), discardLogger()).Fixtures()
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}

func TestCatalogMissingDir(t *testing.T) {
	_, err := NewCatalog(filepath.Join(t.TempDir(), "nope"), DefaultLayout(), discardLogger()).Fixtures()
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	got, err := Decode(strings.NewReader(" 5 -3\n1\t4\r\n2\n"))
	require.NoError(t, err)
	assert.Equal(t, []int64{5, -3, 1, 4, 2}, got)

	got, err = Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Decode(strings.NewReader("1 2 x 4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token 3")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestGenerateCorpus(t *testing.T) {
	dir := t.TempDir()
	layout := DefaultLayout()

	summary, err := NewGenerator(GenConfig{
		Dir:   dir,
		Sizes: []int{0, 50, 200},
		Seed:  42,
	}, layout).Generate()
	require.NoError(t, err)

	assert.Len(t, summary.Files, 15)
	assert.Equal(t, 5*250, summary.Elements)

	fixtures, err := NewCatalog(dir, layout, discardLogger()).Fixtures()
	require.NoError(t, err)
	require.Len(t, fixtures, 15)

	for _, f := range fixtures {
		values, err := Load(f.Path)
		require.NoError(t, err)
		assert.Len(t, values, f.Size, f.Label)

		switch f.Category {
		case "sortat":
			assert.True(t, slices.IsSorted(values), f.Label)
		case "inversat":
			if len(values) > 0 {
				assert.Equal(t, int64(f.Size-1), values[0])
				assert.Equal(t, int64(0), values[len(values)-1])
			}
		case "aproape_sortat":
			sorted := slices.Clone(values)
			slices.Sort(sorted)
			for i, v := range sorted {
				assert.Equal(t, int64(i), v, "nearly sorted must be a permutation")
			}
		case "plat":
			for _, v := range values {
				assert.True(t, v >= 0 && v < 20)
			}
		case "aleator":
			for _, v := range values {
				assert.True(t, v >= 0 && v < 1_000_000_000)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := GenConfig{
		Sizes:      []int{300},
		Categories: []string{"random", "flat", "nearly_sorted"},
		Seed:       7,
	}

	dir1, dir2 := t.TempDir(), t.TempDir()

	cfg.Dir = dir1
	_, err := NewGenerator(cfg, DefaultLayout()).Generate()
	require.NoError(t, err)

	cfg.Dir = dir2
	_, err = NewGenerator(cfg, DefaultLayout()).Generate()
	require.NoError(t, err)

	for _, name := range []string{"aleator_300.csv", "plat_300.csv", "aproape_sortat_300.csv"} {
		a, err := os.ReadFile(filepath.Join(dir1, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir2, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}

func TestGenerateUnknownCategory(t *testing.T) {
	_, err := NewGenerator(GenConfig{
		Dir:        t.TempDir(),
		Sizes:      []int{10},
		Categories: []string{"zigzag"},
	}, DefaultLayout()).Generate()
	assert.Error(t, err)
}

func TestGenerateCustomLayoutOrder(t *testing.T) {
	dir := t.TempDir()
	layout := NewLayout(".txt",
		Category{Key: "flat", Label: "Flat"},
		Category{Key: "sortat", Aliases: []string{"sorted"}, Label: "Sorted"},
	)

	_, err := NewGenerator(GenConfig{Dir: dir, Sizes: []int{100}, Seed: 1}, layout).Generate()
	require.NoError(t, err)

	sorted, err := Load(filepath.Join(dir, "sortat_100.txt"))
	require.NoError(t, err)
	for i, v := range sorted {
		assert.Equal(t, int64(i), v)
	}

	flat, err := Load(filepath.Join(dir, "flat_100.txt"))
	require.NoError(t, err)
	require.Len(t, flat, 100)
	for _, v := range flat {
		assert.True(t, v >= 0 && v < 20)
	}
}

func TestGenerateCategoryWithoutDistribution(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	layout := NewLayout(".csv",
		Category{Key: "sortat", Label: "Sortat"},
		Category{Key: "zigzag", Label: "Zigzag"},
	)

	_, err := NewGenerator(GenConfig{Dir: dir, Sizes: []int{10}}, layout).Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zigzag")
	assert.NoDirExists(t, dir)
}
