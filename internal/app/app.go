// Package app implements the application layer for knin.
package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/knin/internal/core/domain"
	"go.trai.ch/knin/internal/core/ports"
	"go.trai.ch/zerr"
)

// App orchestrates a description session: load the project description,
// emit the build file, and optionally hand off to the external executor.
type App struct {
	loader  ports.ProjectLoader
	emitter ports.Emitter
	runner  ports.BuildRunner
	tools   ports.ToolRunner
	logger  ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ProjectLoader,
	emitter ports.Emitter,
	runner ports.BuildRunner,
	tools ports.ToolRunner,
	logger ports.Logger,
) *App {
	return &App{
		loader:  loader,
		emitter: emitter,
		runner:  runner,
		tools:   tools,
		logger:  logger,
	}
}

// Generate loads the project description and writes the build file. An empty
// outFile falls back to the layout's conventional location. Returns the path
// written.
func (a *App) Generate(projectFile, outFile string) (string, error) {
	p, err := a.loader.Load(projectFile)
	if err != nil {
		return "", zerr.Wrap(err, "failed to load project description")
	}

	if outFile == "" {
		outFile = p.Layout().BuildFile()
	}

	var buf bytes.Buffer
	if err := a.emitter.Emit(&buf, p); err != nil {
		return "", zerr.Wrap(err, "failed to emit build file")
	}

	if err := writeIfChanged(outFile, buf.Bytes()); err != nil {
		return "", err
	}
	a.logger.Info("build file written")
	return outFile, nil
}

// Build generates the build file and invokes the external executor on it,
// forwarding the remaining arguments.
func (a *App) Build(ctx context.Context, projectFile, outFile string, args []string) error {
	buildFile, err := a.Generate(projectFile, outFile)
	if err != nil {
		return err
	}
	return a.runner.Run(ctx, buildFile, args)
}

// Tool runs a toolchain binary against one of the project's definitions.
func (a *App) Tool(ctx context.Context, projectFile, tool, definition string, args []string) error {
	p, err := a.loader.Load(projectFile)
	if err != nil {
		return zerr.Wrap(err, "failed to load project description")
	}
	return a.tools.Exec(ctx, p, tool, definition, args)
}

// writeIfChanged skips the write when the content is already on disk, so the
// executor's own staleness check on the generated file stays meaningful.
func writeIfChanged(path string, content []byte) error {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) { //nolint:gosec // path derives from project layout
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.Wrap(err, "failed to create build directory")
		}
	}
	if err := os.WriteFile(path, content, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write build file")
	}
	return nil
}
