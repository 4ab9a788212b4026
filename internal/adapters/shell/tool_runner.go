package shell

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/knin/internal/core/domain"
	"go.trai.ch/knin/internal/core/ports"
	"go.trai.ch/zerr"
)

// ToolRunner implements ports.ToolRunner by invoking a toolchain binary with
// the selected definition's directory, flags, and environment.
type ToolRunner struct {
	logger ports.Logger
}

// NewToolRunner creates a new ToolRunner.
func NewToolRunner(logger ports.Logger) *ToolRunner {
	return &ToolRunner{logger: logger}
}

var _ ports.ToolRunner = (*ToolRunner)(nil)

// Exec runs the named tool against a definition, forwarding stdio and the
// child's exit status.
func (t *ToolRunner) Exec(ctx context.Context, p *domain.Project, tool, definition string, args []string) error {
	def, err := selectDefinition(p, definition)
	if err != nil {
		return err
	}

	bin := p.Layout().BinDir(tool)
	if _, statErr := os.Stat(bin); statErr != nil {
		err := zerr.Wrap(domain.ErrUnknownTool, "binary not present under the toolchain bin directory")
		return zerr.With(zerr.With(err, "tool", tool), "path", bin)
	}

	argv := toolArgv(p.Layout(), def, tool, args)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // tool path derives from the project layout
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), strings.Fields(def.Env[tool])...)

	t.logger.Info("invoking " + tool)
	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "tool failed"), "tool", tool), "exit_code", exitCode)
	}
	return nil
}

func selectDefinition(p *domain.Project, alias string) (*domain.Definition, error) {
	if alias == "" {
		return p.DefaultDefinition()
	}
	return p.Definition(alias)
}

// toolArgv assembles the tool invocation: the binary under the toolchain bin
// directory, the definition's directory, the definition's per-tool flags,
// then the caller's arguments.
func toolArgv(layout domain.Layout, def *domain.Definition, tool string, args []string) []string {
	argv := []string{layout.BinDir(tool), "--directory", def.Dir(layout)}
	argv = append(argv, strings.Fields(def.Flags[tool])...)
	argv = append(argv, args...)
	return argv
}
