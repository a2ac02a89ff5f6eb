// Package entrypoint renders the FastAPI application module that wires the
// discovered routes and document models together.
package entrypoint

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/simonhull/sequel/internal/discovery"
	"github.com/simonhull/sequel/internal/kit/generator"
	"github.com/simonhull/sequel/internal/pyimports"
	"github.com/simonhull/sequel/internal/pysource"
	"github.com/spf13/afero"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Options configures the generated module.
type Options struct {
	OutputPath  string // Where main.py is written, e.g. "dist/src/main.py"
	Package     string // Import name of the support library, e.g. "sequel"
	DatabaseEnv string // Environment variable holding the MongoDB URI
	Extension   string // Source extension stripped from first-party package names
	ORMModule   string // Module providing init_beanie (default: "beanie")
}

// Generator generates main.py
type Generator struct {
	fs       afero.Fs
	renderer *generator.Renderer
	opts     Options
}

// New creates a new entry point generator
func New(fsys afero.Fs, opts Options) *Generator {
	if opts.Extension == "" {
		opts.Extension = ".py"
	}
	if opts.ORMModule == "" {
		opts.ORMModule = pysource.DefaultClassifier.Module
	}
	return &Generator{
		fs:       fsys,
		renderer: generator.NewRenderer(),
		opts:     opts,
	}
}

// Render returns the normalized main.py source for report.
func (g *Generator) Render(report *discovery.Report) ([]byte, error) {
	data := map[string]any{
		"Package":     g.opts.Package,
		"DatabaseEnv": g.opts.DatabaseEnv,
		"ORMModule":   g.opts.ORMModule,
		"Models":      report.Models,
		"Routes":      report.Routes,
	}

	content, err := g.renderer.RenderFS(templatesFS, "templates/main.py.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("failed to render main.py: %w", err)
	}

	firstParty := append(report.Packages(g.opts.Extension), g.opts.Package)
	content, err = pyimports.Normalize(content, pyimports.Options{FirstParty: firstParty})
	if err != nil {
		return nil, fmt.Errorf("failed to sort main.py imports: %w", err)
	}

	return content, nil
}

// Generate returns the operation writing main.py
func (g *Generator) Generate(report *discovery.Report) ([]generator.Operation, error) {
	content, err := g.Render(report)
	if err != nil {
		return nil, err
	}

	return []generator.Operation{
		&generator.WriteFileOp{
			Fs:      g.fs,
			Path:    filepath.FromSlash(g.opts.OutputPath),
			Content: content,
			Mode:    0644,
		},
	}, nil
}
