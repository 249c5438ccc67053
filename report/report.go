// Package report formats a finished benchmark into a summary table.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/weiihann/sortbench/archive"
	"github.com/weiihann/sortbench/bench"
)

// Generate writes a markdown summary of s to w.
func Generate(w io.Writer, s *bench.Summary) error {
	if s == nil {
		return fmt.Errorf("no summary to report")
	}

	fastest := findFastest(s.Fixtures)

	fmt.Fprintf(w, "## %s sort, %d run(s) per fixture\n", s.Algorithm, s.Runs)
	fmt.Fprintln(w)

	if len(s.Fixtures) == 0 {
		fmt.Fprintln(w, "No fixtures were measured.")
	} else {
		fmt.Fprintln(w, "| Fixture | Runs | Mean | Min | Max | Relative |")
		fmt.Fprintln(w, "|---------|------|------|-----|-----|----------|")

		for _, r := range s.Fixtures {
			relative := 1.0
			if fastest > 0 {
				relative = r.MeanSeconds / fastest
			}

			fmt.Fprintf(w, "| %s | %d | %s | %s | %s | %.2fx |\n",
				r.Fixture.Label,
				len(r.Samples),
				formatSeconds(r.MeanSeconds),
				formatSeconds(slices.Min(r.Samples)),
				formatSeconds(slices.Max(r.Samples)),
				relative,
			)
		}
	}

	if len(s.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Skipped:")

		for _, fx := range s.Skipped {
			fmt.Fprintf(w, "  - %s (%s)\n", fx.Label, fx.Path)
		}
	}

	return nil
}

// GenerateJSON writes s as JSON to w.
func GenerateJSON(w io.Writer, s *bench.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}

func findFastest(results []bench.FixtureResult) float64 {
	fastest := math.Inf(1)
	for _, r := range results {
		if r.MeanSeconds > 0 && r.MeanSeconds < fastest {
			fastest = r.MeanSeconds
		}
	}

	if math.IsInf(fastest, 1) {
		return 0
	}

	return fastest
}

func formatSeconds(s float64) string {
	switch {
	case s < 1e-3:
		return fmt.Sprintf("%.1fµs", s*1e6)
	case s < 1:
		return fmt.Sprintf("%.2fms", s*1e3)
	default:
		return fmt.Sprintf("%.2fs", s)
	}
}

// History writes archived aggregates as an aligned table.
func History(w io.Writer, entries []archive.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No archived runs.")

		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tALGORITHM\tRUNS\tFIXTURE\tMEAN")

	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			e.RunID,
			e.StartedAt.Local().Format(time.DateTime),
			e.Algorithm,
			e.Runs,
			e.Label,
			formatSeconds(e.MeanSeconds),
		)
	}

	return tw.Flush()
}
