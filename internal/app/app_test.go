package app_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/knin/internal/app"
	"go.trai.ch/knin/internal/core/domain"
)

type stubLoader struct {
	project *domain.Project
	err     error
	paths   []string
}

func (s *stubLoader) Load(path string) (*domain.Project, error) {
	s.paths = append(s.paths, path)
	return s.project, s.err
}

type stubEmitter struct {
	content string
}

func (s *stubEmitter) Emit(w io.Writer, _ *domain.Project) error {
	_, err := io.WriteString(w, s.content)
	return err
}

type stubRunner struct {
	buildFile string
	args      []string
	err       error
}

func (s *stubRunner) Run(_ context.Context, buildFile string, args []string) error {
	s.buildFile = buildFile
	s.args = args
	return s.err
}

type stubTools struct {
	tool       string
	definition string
	args       []string
}

func (s *stubTools) Exec(_ context.Context, _ *domain.Project, tool, definition string, args []string) error {
	s.tool = tool
	s.definition = definition
	s.args = args
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func newTestApp(t *testing.T) (*app.App, *stubRunner, *stubTools, string) {
	t.Helper()
	tmp := t.TempDir()
	project := domain.NewProject(domain.Layout{Build: filepath.Join(tmp, "out")})
	loader := &stubLoader{project: project}
	runner := &stubRunner{}
	tools := &stubTools{}
	a := app.New(loader, &stubEmitter{content: "rule tangle\n"}, runner, tools, nopLogger{})
	return a, runner, tools, tmp
}

func TestApp_GenerateWritesBuildFile(t *testing.T) {
	a, _, _, tmp := newTestApp(t)

	out := filepath.Join(tmp, "build.ninja")
	written, err := a.Generate("knin.yaml", out)
	require.NoError(t, err)
	assert.Equal(t, out, written)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "rule tangle\n", string(content))
}

func TestApp_GenerateDefaultsToLayoutPath(t *testing.T) {
	a, _, _, tmp := newTestApp(t)

	written, err := a.Generate("knin.yaml", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "out", "build.ninja"), written)

	_, err = os.Stat(written)
	require.NoError(t, err)
}

func TestApp_GenerateSkipsUnchangedWrite(t *testing.T) {
	a, _, _, tmp := newTestApp(t)
	out := filepath.Join(tmp, "build.ninja")

	_, err := a.Generate("knin.yaml", out)
	require.NoError(t, err)
	first, err := os.Stat(out)
	require.NoError(t, err)

	_, err = a.Generate("knin.yaml", out)
	require.NoError(t, err)
	second, err := os.Stat(out)
	require.NoError(t, err)

	// Identical content leaves the file untouched so the executor's
	// staleness check on it stays meaningful.
	assert.Equal(t, first.ModTime(), second.ModTime())
}

func TestApp_BuildForwardsToRunner(t *testing.T) {
	a, runner, _, tmp := newTestApp(t)
	out := filepath.Join(tmp, "build.ninja")

	err := a.Build(context.Background(), "knin.yaml", out, []string{"-j", "4", "all"})
	require.NoError(t, err)
	assert.Equal(t, out, runner.buildFile)
	assert.Equal(t, []string{"-j", "4", "all"}, runner.args)
}

func TestApp_ToolForwardsSelection(t *testing.T) {
	a, _, tools, _ := newTestApp(t)

	err := a.Tool(context.Background(), "knin.yaml", "krun", "java", []string{"prog.k"})
	require.NoError(t, err)
	assert.Equal(t, "krun", tools.tool)
	assert.Equal(t, "java", tools.definition)
	assert.Equal(t, []string{"prog.k"}, tools.args)
}

func TestApp_GenerateLoaderError(t *testing.T) {
	loader := &stubLoader{err: os.ErrNotExist}
	a := app.New(loader, &stubEmitter{}, &stubRunner{}, &stubTools{}, nopLogger{})

	_, err := a.Generate("knin.yaml", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
