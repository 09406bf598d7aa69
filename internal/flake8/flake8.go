// Package flake8 wraps the flake8 command line tool as a subprocess.
package flake8

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/flake518/flake518/internal/logging"
)

// DefaultBinary is the flake8 executable looked up on PATH.
const DefaultBinary = "flake8"

// EnvBinary overrides the flake8 executable path.
const EnvBinary = "FLAKE518_FLAKE8"

// Output is the captured result of a flake8 execution.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration string
}

// Runner executes flake8 as a subprocess.
//
// Runner is stateless and goroutine-safe. The working directory is the
// process's own at execution time.
type Runner struct {
	// Binary is the flake8 executable (optional override).
	Binary string

	// Stdin, Stdout and Stderr are wired into the subprocess. Run
	// inherits the parent process streams when they are nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a runner wired to the parent process streams, honoring
// the FLAKE518_FLAKE8 override.
func NewRunner() *Runner {
	return &Runner{
		Binary: os.Getenv(EnvBinary),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Command returns the flake8 executable to invoke.
func (r *Runner) Command() string {
	if r.Binary != "" {
		return r.Binary
	}
	return DefaultBinary
}

// CheckAvailability checks that flake8 can be executed.
func (r *Runner) CheckAvailability(ctx context.Context) error {
	name := r.Command()
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("flake8 not found (checked: %s): %w", name, err)
	}

	cmd := exec.CommandContext(ctx, name, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("flake8 is not runnable: %w", err)
	}
	return nil
}

// Run executes flake8 with the given arguments and returns its exit code.
// A non-zero exit (style violations found) is not an error; only a failure
// to start the subprocess is.
func (r *Runner) Run(ctx context.Context, args []string) (int, error) {
	logger := logging.GetLogger("flake8")

	name := r.Command()
	logger.Debug().Str("command", name).Strs("args", args).Msg("Invoking flake8")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed to execute %s: %w", name, err)
	}
	return 0, nil
}

// RunCapture executes flake8 with the given arguments and captures its
// output instead of inheriting the parent streams.
func (r *Runner) RunCapture(ctx context.Context, args []string) (*Output, error) {
	var stdout, stderr bytes.Buffer

	captured := &Runner{
		Binary: r.Binary,
		Stdout: &stdout,
		Stderr: &stderr,
	}

	start := time.Now()
	code, err := captured.Run(ctx, args)
	if err != nil {
		return nil, err
	}

	return &Output{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: code,
		Duration: time.Since(start).String(),
	}, nil
}
