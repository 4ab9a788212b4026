package commands_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/knin/cmd/knin/commands"
	"go.trai.ch/knin/internal/adapters/config"
	"go.trai.ch/knin/internal/adapters/ninja"
	"go.trai.ch/knin/internal/app"
	"go.trai.ch/knin/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type recordingRunner struct {
	buildFile string
	args      []string
}

func (r *recordingRunner) Run(_ context.Context, buildFile string, args []string) error {
	r.buildFile = buildFile
	r.args = args
	return nil
}

type recordingTools struct {
	tool       string
	definition string
	args       []string
}

func (r *recordingTools) Exec(_ context.Context, _ *domain.Project, tool, definition string, args []string) error {
	r.tool = tool
	r.definition = definition
	r.args = args
	return nil
}

func writeProject(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ProjectFileName)
	content := `
version: "1"
layout:
  build: ` + filepath.Join(dir, "out") + `
definitions:
  - alias: java
targets:
  - source: foo.md
    steps:
      - rule: tangle
    default: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newCLI(t *testing.T) (*commands.CLI, *recordingRunner, *recordingTools) {
	t.Helper()
	runner := &recordingRunner{}
	tools := &recordingTools{}
	a := app.New(config.NewLoader(nopLogger{}), ninja.NewEmitter(), runner, tools, nopLogger{})
	return commands.New(a), runner, tools
}

func TestRoot_Help(t *testing.T) {
	cli, _, _ := newCLI(t)
	cli.SetArgs([]string{"--help"})
	assert.NoError(t, cli.Execute(context.Background()))
}

func TestGenerate_WritesBuildFile(t *testing.T) {
	dir := t.TempDir()
	project := writeProject(t, dir)
	out := filepath.Join(dir, "build.ninja")

	cli, _, _ := newCLI(t)
	cli.SetArgs([]string{"generate", "--project", project, "--output", out})
	require.NoError(t, cli.Execute(context.Background()))

	f, err := os.Open(out) //nolint:gosec // test-owned path
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(content), "build "+filepath.Join(dir, "out", "tangle", "foo.k")+": tangle foo.md")
}

func TestBuild_ForwardsArgsToExecutor(t *testing.T) {
	dir := t.TempDir()
	project := writeProject(t, dir)
	out := filepath.Join(dir, "build.ninja")

	cli, runner, _ := newCLI(t)
	cli.SetArgs([]string{"build", "--project", project, "--output", out, "--", "-j", "4"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, out, runner.buildFile)
	assert.Equal(t, []string{"-j", "4"}, runner.args)
}

func TestTool_ForwardsSelection(t *testing.T) {
	dir := t.TempDir()
	project := writeProject(t, dir)

	cli, _, tools := newCLI(t)
	cli.SetArgs([]string{"tool", "krun", "--project", project, "--definition", "java", "prog.k"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, "krun", tools.tool)
	assert.Equal(t, "java", tools.definition)
	assert.Equal(t, []string{"prog.k"}, tools.args)
}

func TestGenerate_MissingProjectFile(t *testing.T) {
	cli, _, _ := newCLI(t)
	cli.SetArgs([]string{"generate", "--project", filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, cli.Execute(context.Background()))
}
