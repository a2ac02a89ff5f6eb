package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/simonhull/sequel/internal/kit/filesystem"
	"github.com/simonhull/sequel/internal/pathname"
	"github.com/simonhull/sequel/internal/pysource"
	"github.com/spf13/afero"
)

// Options locates the interesting subtrees of a source root.
// Subtree paths are slash-separated and relative to SourceDir.
type Options struct {
	SourceDir  string   // Source root on the filesystem, e.g. "src"
	APIDir     string   // API subtree, e.g. "api"
	ModelsDir  string   // Models subtree, e.g. "models/beanie"
	Extension  string   // Source file extension, e.g. ".py"
	Marker     string   // Endpoint file basename, e.g. "route.py"
	IgnoreDirs []string // Directory names never entered (nil: filesystem.DefaultIgnoreDirs)

	// IgnorePatterns are file name globs left out of the build, e.g. "test_*.py".
	IgnorePatterns []string
	// IncludeHidden walks dot files and dot directories too.
	IncludeHidden  bool

	// IncludeAPISegment keeps the API directory in URL prefixes
	// ("api/items" instead of "items").
	IncludeAPISegment bool

	Classifier pysource.Classifier
}

// DefaultOptions returns the conventional project layout.
func DefaultOptions() Options {
	return Options{
		SourceDir:  "src",
		APIDir:     "api",
		ModelsDir:  "models/beanie",
		Extension:  ".py",
		Marker:     "route.py",
		Classifier: pysource.DefaultClassifier,
	}
}

// Walker discovers models and routes in a source tree.
type Walker struct {
	fs     afero.Fs
	opts   Options
	logger *slog.Logger
}

// NewWalker creates a walker over fsys. A nil logger uses slog.Default().
func NewWalker(fsys afero.Fs, opts Options, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Classifier == (pysource.Classifier{}) {
		opts.Classifier = pysource.DefaultClassifier
	}
	return &Walker{fs: fsys, opts: opts, logger: logger}
}

// Walk visits every source file once and returns the sorted report.
// It fails on unreadable files, unparsable model files and name collisions.
func (w *Walker) Walk(ctx context.Context) (*Report, error) {
	info, err := w.fs.Stat(w.opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", w.opts.SourceDir)
	}

	parser := pysource.NewParser()
	defer parser.Close()

	report := &Report{}
	walkOpts := filesystem.WalkOptions{
		IgnoreDirs:     w.opts.IgnoreDirs,
		IgnorePatterns: w.opts.IgnorePatterns,
		IncludeHidden:  w.opts.IncludeHidden,
	}

	err = filesystem.WalkFiles(w.fs, w.opts.SourceDir, walkOpts, func(p string, _ os.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !strings.HasSuffix(p, w.opts.Extension) {
			return nil
		}

		rel, err := filepath.Rel(w.opts.SourceDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		return w.visit(ctx, parser, report, p, rel)
	})
	if err != nil {
		return nil, err
	}

	report.sort()
	if err := report.check(); err != nil {
		return nil, err
	}

	w.logger.Info("discovered sources",
		"files", len(report.Files),
		"models", len(report.Models),
		"routes", len(report.Routes))

	return report, nil
}

func (w *Walker) visit(ctx context.Context, parser *pysource.Parser, report *Report, p, rel string) error {
	dest := pathname.SanitizePath(rel)
	modulePath := pathname.ModulePath(rel, w.opts.Extension)

	report.Files = append(report.Files, FileCopy{Source: p, RelPath: rel, Dest: dest})

	if pathname.Within(rel, w.opts.ModelsDir) {
		classes, err := w.classify(ctx, parser, p, rel)
		if err != nil {
			return err
		}
		for _, class := range classes {
			w.logger.Debug("found model", "class", class, "path", rel)
			report.Models = append(report.Models, Model{Class: class, ModulePath: modulePath, RelPath: rel})
		}
	}

	if pathname.Within(rel, w.opts.APIDir) && path.Base(rel) == w.opts.Marker {
		routeRel := rel
		if !w.opts.IncludeAPISegment {
			routeRel = strings.TrimPrefix(rel, strings.Trim(w.opts.APIDir, "/")+"/")
		}
		route := RouteFor(routeRel, w.opts.Marker, modulePath)
		route.RelPath = rel
		w.logger.Debug("found route", "prefix", "/"+route.Prefix, "path", rel)
		report.Routes = append(report.Routes, route)
	}

	return nil
}

func (w *Walker) classify(ctx context.Context, parser *pysource.Parser, p, rel string) ([]string, error) {
	src, err := afero.ReadFile(w.fs, p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}

	file, err := parser.Parse(ctx, rel, src)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return w.opts.Classifier.ClassifyAll(file), nil
}
