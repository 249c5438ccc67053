package harness

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/weiihann/sortbench/algorithm"
	"github.com/weiihann/sortbench/fixture"
)

// ChildCommand is the argument that switches the binary into child mode.
const ChildCommand = "sort-child"

// Exit codes used by a child process.
const (
	exitOK    = 0
	exitFault = 1
	exitUsage = 2
)

// ChildArgs returns the arguments, after any wrapper arguments, that make
// the binary sort path with kind and exit.
func ChildArgs(kind algorithm.Kind, path string, verify bool) []string {
	args := []string{ChildCommand, "--algorithm", kind.String(), "--fixture", path}
	if verify {
		args = append(args, "--verify")
	}

	return args
}

// Executable returns the path of the running binary, used to re-execute
// it in child mode.
func Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}

	return exe, nil
}

// ChildMain is the entry point of a child process. args are the arguments
// following ChildCommand. It returns the process exit code.
func ChildMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(ChildCommand, flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("algorithm", "", "sorting algorithm")
	path := fs.String("fixture", "", "fixture file to sort")
	verify := fs.Bool("verify", false, "check the output is sorted")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	kind, err := algorithm.Parse(*name)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return exitUsage
	}

	if *path == "" {
		fmt.Fprintln(stderr, "--fixture is required")

		return exitUsage
	}

	if err := RunChild(stdout, kind, *path, *verify); err != nil {
		fmt.Fprintln(stderr, err)

		return exitFault
	}

	return exitOK
}

// RunChild loads the fixture at path, sorts it with kind and writes a
// ChildReport to w.
func RunChild(w io.Writer, kind algorithm.Kind, path string, verify bool) error {
	values, err := fixture.Load(path)
	if err != nil {
		return err
	}

	kind.Sort(values)

	report := ChildReport{
		Algorithm: kind.String(),
		Elements:  len(values),
	}

	if verify {
		if !slices.IsSorted(values) {
			return errors.New("sort output is not in non-decreasing order")
		}

		report.Verified = true
	}

	if err := json.NewEncoder(w).Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}
