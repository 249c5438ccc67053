package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/weiihann/sortbench/algorithm"
	"github.com/weiihann/sortbench/fixture"
)

// ErrChildFault is returned when a child process crashes, exits non-zero,
// times out or produces an unreadable report.
var ErrChildFault = errors.New("child fault")

// Runner spawns one child process per measured run.
type Runner struct {
	Executable string
	ExtraArgs  []string
	Env        []string
	// Timeout bounds a single child. Zero waits forever.
	Timeout time.Duration
	Verify  bool
	Logger  *slog.Logger
}

// NewRunner creates a Runner that re-executes executable in child mode.
// ExtraArgs are placed before the child arguments and Env is appended to
// the inherited environment.
func NewRunner(
	executable string,
	extraArgs, env []string,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		Executable: executable,
		ExtraArgs:  extraArgs,
		Env:        env,
		Logger:     logger,
	}
}

// Wrap launches every child through wrapper, a command such as
// "taskset -c 2" or "nice -n 10" that runs its trailing arguments. The
// wrapper's own start-up time is part of every sample.
func (r *Runner) Wrap(wrapper []string) {
	if len(wrapper) == 0 {
		return
	}

	args := make([]string, 0, len(wrapper)+len(r.ExtraArgs))
	args = append(args, wrapper[1:]...)
	args = append(args, r.Executable)
	args = append(args, r.ExtraArgs...)

	r.Executable = wrapper[0]
	r.ExtraArgs = args
}

// Execute sorts fx with kind in a fresh child process and returns the wall
// clock time between spawn and exit as observed by the parent.
func (r *Runner) Execute(
	ctx context.Context,
	fx fixture.Fixture,
	kind algorithm.Kind,
) (time.Duration, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	childArgs := ChildArgs(kind, fx.Path, r.Verify)
	args := make([]string, 0, len(r.ExtraArgs)+len(childArgs))
	args = append(args, r.ExtraArgs...)
	args = append(args, childArgs...)

	cmd := exec.CommandContext(ctx, r.Executable, args...)

	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, fmt.Errorf("%w: %s on %s: %w",
				ErrChildFault, kind, fx.Label, ctxErr)
		}

		return 0, fmt.Errorf("%w: %s on %s: %w\nstderr: %s",
			ErrChildFault, kind, fx.Label, runErr,
			strings.TrimSpace(stderr.String()))
	}

	report, err := parseReport(kind, &stdout)
	if err != nil {
		return 0, fmt.Errorf("%w: %s on %s: %w\nstdout: %s",
			ErrChildFault, kind, fx.Label, err, stdout.String())
	}

	if r.Verify && !report.Verified {
		return 0, fmt.Errorf("%w: %s on %s: output was not verified",
			ErrChildFault, kind, fx.Label)
	}

	r.Logger.DebugContext(ctx, "child finished",
		slog.String("fixture", fx.Label),
		slog.String("algorithm", report.Algorithm),
		slog.Int("elements", report.Elements),
		slog.Duration("wall_time", elapsed),
	)

	return elapsed, nil
}

func parseReport(kind algorithm.Kind, r io.Reader) (*ChildReport, error) {
	var report ChildReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	if report.Algorithm == "" {
		report.Algorithm = kind.String()
	}

	if report.Algorithm != kind.String() {
		return nil, fmt.Errorf("child ran %q, want %q", report.Algorithm, kind)
	}

	return &report, nil
}
