package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/weiihann/sortbench/fixture"
)

type generateConfig struct {
	dir        string
	sizes      []int
	categories []string
	seed       int64
}

func newGenerateCmd(a *app) *cobra.Command {
	var gc generateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the fixture corpus",
		Long: `Write one fixture per category and size into the fixtures directory:
descending, ascending, nearly sorted (5% of positions swapped), uniformly
random, and flat (20 distinct values) integer lists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generateFixtures(cmd, a, gc)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&gc.dir, "dir", "",
		"Output directory (default: the configured fixtures dir)")
	flags.IntSliceVar(&gc.sizes, "sizes", fixture.DefaultSizes,
		"Element counts to generate")
	flags.StringSliceVar(&gc.categories, "categories", nil,
		"Categories to generate (default: all)")
	flags.Int64Var(&gc.seed, "seed", 0,
		"Random seed (0 = use current time)")

	return cmd
}

func generateFixtures(cmd *cobra.Command, a *app, gc generateConfig) error {
	ctx := cmd.Context()

	dir := gc.dir
	if dir == "" {
		dir = a.cfg.FixturesDir
	}

	seed := gc.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	layout := fixture.DefaultLayout().WithExtension(a.cfg.Extension)
	gen := fixture.NewGenerator(fixture.GenConfig{
		Dir:        dir,
		Sizes:      gc.sizes,
		Categories: gc.categories,
		Seed:       seed,
	}, layout)

	a.logger.InfoContext(ctx, "generating fixtures",
		slog.String("dir", dir),
		slog.Any("sizes", gc.sizes),
		slog.Int64("seed", seed),
	)

	summary, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("generate fixtures: %w", err)
	}

	a.logger.InfoContext(ctx, "fixtures generated",
		slog.Int("files", len(summary.Files)),
		slog.Int("elements", summary.Elements),
	)

	return nil
}
