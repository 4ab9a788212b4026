// Package shell runs the external build executor and toolchain binaries.
package shell

import (
	"context"
	"os"
	"os/exec"

	"go.trai.ch/knin/internal/core/ports"
	"go.trai.ch/zerr"
)

// NinjaRunner implements ports.BuildRunner by invoking the ninja binary with
// inherited stdio. knin never schedules work itself; everything after
// emission belongs to ninja.
type NinjaRunner struct {
	logger ports.Logger

	// Bin is the executor binary. Defaults to "ninja"; overridable for
	// tests.
	Bin string
}

// NewNinjaRunner creates a new NinjaRunner.
func NewNinjaRunner(logger ports.Logger) *NinjaRunner {
	return &NinjaRunner{logger: logger, Bin: "ninja"}
}

var _ ports.BuildRunner = (*NinjaRunner)(nil)

// Run invokes the executor on the generated build file, appending forwarded
// arguments. The child owns the terminal; its exit status is surfaced as an
// error carrying the exit code.
func (r *NinjaRunner) Run(ctx context.Context, buildFile string, args []string) error {
	argv := make([]string, 0, 2+len(args))
	argv = append(argv, "-f", buildFile)
	argv = append(argv, args...)

	cmd := exec.CommandContext(ctx, r.Bin, argv...) //nolint:gosec // executor binary is configuration
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.logger.Info("invoking build executor")
	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "build executor failed"), "exit_code", exitCode)
	}
	return nil
}
