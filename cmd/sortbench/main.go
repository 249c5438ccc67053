// Package main provides the CLI entry point for sortbench, a tool that times
// sorting algorithms on a corpus of fixture files, one child process per run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/weiihann/sortbench/config"
)

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(logger, level, viper.New())

	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		stop()
		os.Exit(handleError(os.Stderr, cmd, logger, err))
	}
}

// handleError reports err to the operator and returns the exit code.
func handleError(w io.Writer, cmd *cobra.Command, logger *slog.Logger, err error) int {
	var exit exitCodeError
	if errors.As(err, &exit) {
		return exit.code
	}

	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(w, "Error: %v\n\n", usage.err)
		if cmd != nil {
			fmt.Fprint(w, cmd.UsageString())
		}

		return exitUsage
	}

	logger.Error("sortbench failed", slog.String("error", err.Error()))

	return exitFailure
}

// usageError marks malformed command lines.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// exitCodeError carries an exit code that has already been reported.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// app carries state shared by every subcommand.
type app struct {
	logger  *slog.Logger
	level   *slog.LevelVar
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

func (a *app) loadConfig() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.level.Set(cfg.LogLevel)

	return nil
}
