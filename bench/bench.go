// Package bench drives a benchmark: it walks the fixture catalog in order,
// applies the skip policy, times every run in isolation and streams the
// results to a sink.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/weiihann/sortbench/algorithm"
	"github.com/weiihann/sortbench/fixture"
	"github.com/weiihann/sortbench/results"
)

// DefaultSkipAbove is the largest fixture a quadratic algorithm is run on.
const DefaultSkipAbove = 100_000

// Lister returns fixtures in processing order.
type Lister interface {
	Fixtures() ([]fixture.Fixture, error)
}

// Executor times one sort of one fixture.
type Executor interface {
	Execute(ctx context.Context, fx fixture.Fixture, kind algorithm.Kind) (time.Duration, error)
}

// Progress receives advisory updates for the operator.
type Progress interface {
	Update(label string, done, total int)
	Done(label string)
	Skipped(fx fixture.Fixture)
}

// Config holds the parameters of one benchmark.
type Config struct {
	Algorithm algorithm.Kind
	Runs      int
	// SkipAbove is the largest fixture size quadratic algorithms run on.
	// Zero skips every non-empty fixture for them.
	SkipAbove int
}

// FixtureResult holds the samples recorded for one fixture.
type FixtureResult struct {
	Fixture     fixture.Fixture `json:"fixture"`
	Samples     []float64       `json:"samples"`
	MeanSeconds float64         `json:"mean_seconds"`
}

// Summary describes a finished benchmark.
type Summary struct {
	Algorithm string            `json:"algorithm"`
	Runs      int               `json:"runs"`
	Fixtures  []FixtureResult   `json:"fixtures"`
	Skipped   []fixture.Fixture `json:"skipped"`
}

// Driver runs a benchmark strictly sequentially.
type Driver struct {
	cfg      Config
	fixtures Lister
	exec     Executor
	sink     results.Sink
	progress Progress
	logger   *slog.Logger
}

// New creates a Driver.
func New(
	cfg Config,
	fixtures Lister,
	exec Executor,
	sink results.Sink,
	progress Progress,
	logger *slog.Logger,
) (*Driver, error) {
	if cfg.Runs < 1 {
		return nil, fmt.Errorf("run count must be at least 1, got %d", cfg.Runs)
	}

	if cfg.SkipAbove < 0 {
		return nil, fmt.Errorf("skip limit must not be negative, got %d", cfg.SkipAbove)
	}

	return &Driver{
		cfg:      cfg,
		fixtures: fixtures,
		exec:     exec,
		sink:     sink,
		progress: progress,
		logger:   logger.With(slog.String("algorithm", cfg.Algorithm.String())),
	}, nil
}

// ShouldSkip reports whether fx is too large for the configured algorithm.
func (d *Driver) ShouldSkip(fx fixture.Fixture) bool {
	return d.cfg.Algorithm.Quadratic() && fx.Size > d.cfg.SkipAbove
}

// Run benchmarks every fixture. Samples are written to the sink as they are
// taken; each fixture's aggregate follows its last sample. The returned
// Summary is complete only when err is nil.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	fixtures, err := d.fixtures.Fixtures()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	d.logger.InfoContext(ctx, "starting benchmark",
		slog.Int("fixtures", len(fixtures)),
		slog.Int("runs", d.cfg.Runs),
	)

	summary := &Summary{
		Algorithm: d.cfg.Algorithm.String(),
		Runs:      d.cfg.Runs,
		Fixtures:  make([]FixtureResult, 0, len(fixtures)),
	}

	for _, fx := range fixtures {
		if d.ShouldSkip(fx) {
			d.logger.InfoContext(ctx, "skipping fixture",
				slog.String("fixture", fx.Label),
				slog.Int("size", fx.Size),
				slog.Int("limit", d.cfg.SkipAbove),
			)
			d.progress.Skipped(fx)
			summary.Skipped = append(summary.Skipped, fx)

			continue
		}

		res, err := d.runFixture(ctx, fx)
		if err != nil {
			return summary, err
		}

		summary.Fixtures = append(summary.Fixtures, res)
	}

	d.logger.InfoContext(ctx, "benchmark complete",
		slog.Int("measured", len(summary.Fixtures)),
		slog.Int("skipped", len(summary.Skipped)),
	)

	return summary, nil
}

func (d *Driver) runFixture(ctx context.Context, fx fixture.Fixture) (FixtureResult, error) {
	res := FixtureResult{
		Fixture: fx,
		Samples: make([]float64, 0, d.cfg.Runs),
	}

	var sum float64

	for run := 1; run <= d.cfg.Runs; run++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("benchmark interrupted at %s run %d: %w", fx.Label, run, err)
		}

		elapsed, err := d.exec.Execute(ctx, fx, d.cfg.Algorithm)
		if err != nil {
			return res, fmt.Errorf("run %d of %s: %w", run, fx.Label, err)
		}

		seconds := elapsed.Seconds()
		if err := d.sink.Sample(results.Sample{Label: fx.Label, Run: run, Seconds: seconds}); err != nil {
			return res, fmt.Errorf("record sample: %w", err)
		}

		sum += seconds
		res.Samples = append(res.Samples, seconds)
		d.progress.Update(fx.Label, run, d.cfg.Runs)
	}

	res.MeanSeconds = sum / float64(d.cfg.Runs)

	if err := d.sink.Aggregate(results.Aggregate{Label: fx.Label, MeanSeconds: res.MeanSeconds}); err != nil {
		return res, fmt.Errorf("record aggregate: %w", err)
	}

	d.progress.Done(fx.Label)

	d.logger.DebugContext(ctx, "fixture measured",
		slog.String("fixture", fx.Label),
		slog.Float64("mean_seconds", res.MeanSeconds),
	)

	return res, nil
}
