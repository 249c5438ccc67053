package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/weiihann/sortbench/algorithm"
	"github.com/weiihann/sortbench/archive"
	"github.com/weiihann/sortbench/bench"
	"github.com/weiihann/sortbench/config"
	"github.com/weiihann/sortbench/console"
	"github.com/weiihann/sortbench/fixture"
	"github.com/weiihann/sortbench/harness"
	"github.com/weiihann/sortbench/metrics"
	"github.com/weiihann/sortbench/report"
	"github.com/weiihann/sortbench/results"
)

func newRootCmd(logger *slog.Logger, level *slog.LevelVar, v *viper.Viper) *cobra.Command {
	a := &app{logger: logger, level: level, v: v}

	root := &cobra.Command{
		Use:   "sortbench <algorithm> <runs>",
		Short: "Time sorting algorithms on fixture files, one process per run",
		Long: `Sortbench times a sorting algorithm against every fixture in the fixtures
directory. Each run sorts a fresh copy of the fixture inside its own child
process. Raw samples and per-fixture means are written as CSV.

Algorithms: ` + strings.Join(algorithm.Names(), ", "),
		Args:          validateRunArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, _ := strconv.Atoi(args[1])

			return runBenchmark(cmd, a, args[0], runs)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	persistent := root.PersistentFlags()
	persistent.StringVar(&a.cfgFile, "config", "",
		"Config file (default: ./sortbench.yaml if present)")
	persistent.String("log-level", "info",
		"Log level: debug, info, warn, error")
	persistent.String("fixtures-dir", "liste",
		"Directory holding <category>_<size> fixture files")
	persistent.String("history-db", "",
		"SQLite database archiving every run (disabled when empty)")

	flags := root.Flags()
	flags.String("extension", ".csv",
		"Extension of fixture files (empty accepts every file)")
	flags.String("raw-output", "rezultate.csv",
		"CSV file receiving one row per run")
	flags.String("aggregate-output", "rezultate2.csv",
		"CSV file receiving one mean per fixture")
	flags.Int("skip-above", bench.DefaultSkipAbove,
		"Largest fixture run with bubble, selection or insertion sort (0 skips every non-empty fixture)")
	flags.Duration("timeout", 0,
		"Abort a run whose child takes longer than this (0 = wait forever)")
	flags.Bool("verify", false,
		"Have each child check its output is sorted")
	flags.String("metrics-file", "",
		"Write Prometheus text metrics to this file (disabled when empty)")
	flags.Bool("quiet", false,
		"Do not draw progress")
	flags.Bool("json", false,
		"Print the summary as JSON instead of a table")
	flags.String("child-wrapper", "",
		`Command each child is launched through, e.g. "taskset -c 2" (its start-up is timed too)`)

	bindFlags(v, persistent, map[string]string{
		config.KeyLogLevel:    "log-level",
		config.KeyFixturesDir: "fixtures-dir",
		config.KeyHistoryDB:   "history-db",
	})
	bindFlags(v, flags, map[string]string{
		config.KeyExtension:       "extension",
		config.KeyRawOutput:       "raw-output",
		config.KeyAggregateOutput: "aggregate-output",
		config.KeySkipAbove:       "skip-above",
		config.KeyTimeout:         "timeout",
		config.KeyVerify:          "verify",
		config.KeyMetricsFile:     "metrics-file",
		config.KeyQuiet:           "quiet",
		config.KeyJSON:            "json",
		config.KeyChildWrapper:    "child-wrapper",
	})

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newChildCmd())

	return root
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func validateRunArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return usageErrorf("expected <algorithm> <runs>, got %d argument(s)", len(args))
	}

	runs, err := strconv.Atoi(args[1])
	if err != nil || runs < 1 {
		return usageErrorf("run count must be a positive integer, got %q", args[1])
	}

	return nil
}

// operatorProgress is the console surface used by a benchmark.
type operatorProgress interface {
	bench.Progress
	Finish(rawPath, aggPath string)
}

func runBenchmark(cmd *cobra.Command, a *app, name string, runs int) (err error) {
	ctx := cmd.Context()
	cfg := a.cfg
	logger := a.logger

	kind, err := algorithm.Parse(name)
	if err != nil {
		return err
	}

	exe, err := harness.Executable()
	if err != nil {
		return err
	}

	sink, err := openSinks(cfg, kind, runs)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close outputs: %w", closeErr))
		}
	}()

	var progress operatorProgress = console.New(cmd.ErrOrStderr())
	if cfg.Quiet {
		progress = console.Nop{}
	}

	layout := fixture.DefaultLayout().WithExtension(cfg.Extension)
	catalog := fixture.NewCatalog(cfg.FixturesDir, layout, logger)

	runner := harness.NewRunner(exe, nil, nil, logger)
	runner.Wrap(cfg.ChildWrapper)
	runner.Timeout = cfg.Timeout
	runner.Verify = cfg.Verify

	driver, err := bench.New(bench.Config{
		Algorithm: kind,
		Runs:      runs,
		SkipAbove: cfg.SkipAbove,
	}, catalog, runner, sink, progress, logger)
	if err != nil {
		return err
	}

	summary, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("benchmark %s: %w", kind, err)
	}

	progress.Finish(cfg.RawOutput, cfg.AggregateOutput)

	if cfg.JSON {
		return report.GenerateJSON(cmd.OutOrStdout(), summary)
	}

	return report.Generate(cmd.OutOrStdout(), summary)
}

// openSinks opens every configured output. Nothing is left open on error,
// and an unusable metrics file is reported before any CSV is created.
func openSinks(cfg config.Config, kind algorithm.Kind, runs int) (results.Sink, error) {
	var recorder *metrics.Recorder

	if cfg.MetricsFile != "" {
		var err error

		recorder, err = metrics.NewRecorder(cfg.MetricsFile, kind.String())
		if err != nil {
			return nil, err
		}
	}

	csvSink, err := results.OpenCSV(cfg.RawOutput, cfg.AggregateOutput)
	if err != nil {
		return nil, err
	}

	sinks := results.Multi{csvSink}

	if cfg.HistoryDB != "" {
		store, err := archive.Open(cfg.HistoryDB, kind.String(), runs)
		if err != nil {
			sinks.Close()

			return nil, err
		}

		sinks = append(sinks, store)
	}

	if recorder != nil {
		sinks = append(sinks, recorder)
	}

	return sinks, nil
}
