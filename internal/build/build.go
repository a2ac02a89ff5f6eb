// Package build runs one full rebuild of a project's output tree.
package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/simonhull/sequel/internal/discovery"
	"github.com/simonhull/sequel/internal/generators/entrypoint"
	"github.com/simonhull/sequel/internal/kit/generator"
	"github.com/simonhull/sequel/internal/stage"
	"github.com/spf13/afero"
)

// Options combines the layout of the input and output trees.
type Options struct {
	Discovery   discovery.Options
	Stage       stage.Options
	Entrypoint  string // File name of the generated module inside the output source root
	DatabaseEnv string // Environment variable the generated module reads the MongoDB URI from

	DryRun bool
	Quiet  bool
	Writer io.Writer // Operation log (default os.Stdout)
}

// Result summarizes a build.
type Result struct {
	Report     *discovery.Report
	Operations int
	Entrypoint string // Path of the generated module
}

// Builder rebuilds the output tree of one project.
type Builder struct {
	fs     afero.Fs
	opts   Options
	logger *slog.Logger
}

// New creates a builder over fsys, whose root is the project root.
// A nil logger uses slog.Default().
func New(fsys afero.Fs, opts Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{fs: fsys, opts: opts, logger: logger}
}

// EntrypointPath returns where the generated module is written.
func (b *Builder) EntrypointPath() string {
	return filepath.Join(b.opts.Stage.SourceRoot(), b.opts.Entrypoint)
}

// Discover walks the source tree without touching the output.
func (b *Builder) Discover(ctx context.Context) (*discovery.Report, error) {
	report, err := discovery.NewWalker(b.fs, b.opts.Discovery, b.logger).Walk(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	return report, nil
}

// Preview renders the entry point for the current sources in memory.
func (b *Builder) Preview(ctx context.Context) ([]byte, error) {
	report, err := b.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return b.entrypoint().Render(report)
}

// Build discovers sources, plans the output tree and executes the plan.
// Every operation is validated before the first one runs. A failure while
// executing leaves a partial tree behind; the next build starts from scratch.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	report, err := b.Discover(ctx)
	if err != nil {
		return nil, err
	}

	ops, err := stage.New(b.fs, b.opts.Stage, b.logger).Plan(report)
	if err != nil {
		return nil, fmt.Errorf("staging failed: %w", err)
	}

	mainOps, err := b.entrypoint().Generate(report)
	if err != nil {
		return nil, err
	}
	ops = append(ops, mainOps...)

	b.logger.Info("executing build",
		"operations", len(ops),
		"dry_run", b.opts.DryRun)

	err = generator.Execute(ctx, ops, generator.ExecuteOptions{
		DryRun: b.opts.DryRun,
		Quiet:  b.opts.Quiet,
		Writer: b.opts.Writer,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Report:     report,
		Operations: len(ops),
		Entrypoint: b.EntrypointPath(),
	}, nil
}

func (b *Builder) entrypoint() *entrypoint.Generator {
	return entrypoint.New(b.fs, entrypoint.Options{
		OutputPath:  filepath.ToSlash(b.EntrypointPath()),
		Package:     b.opts.Stage.Package,
		DatabaseEnv: b.opts.DatabaseEnv,
		Extension:   b.opts.Discovery.Extension,
		ORMModule:   b.opts.Discovery.Classifier.Module,
	})
}
