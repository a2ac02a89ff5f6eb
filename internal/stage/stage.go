// Package stage plans the file operations that rebuild the output tree:
// a clean output directory, the support files, the support library and a
// sanitized mirror of every discovered source file.
package stage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/simonhull/sequel/internal/discovery"
	"github.com/simonhull/sequel/internal/kit/filesystem"
	"github.com/simonhull/sequel/internal/kit/generator"
	"github.com/spf13/afero"
)

// SupportFile is copied from the project root into the output root.
type SupportFile struct {
	From string `yaml:"from" mapstructure:"from"`
	To   string `yaml:"to" mapstructure:"to"`
}

// Options lays out the output tree. Paths are relative to the project root.
type Options struct {
	OutputDir    string // e.g. "dist"
	OutputSrc    string // Source root inside OutputDir, e.g. "src"
	LibraryDir   string // Support library to copy, e.g. "lib"
	Package      string // Import name of the copied library, e.g. "sequel"
	SupportFiles []SupportFile
}

// SourceRoot returns the output directory sources are mirrored into.
func (o Options) SourceRoot() string {
	return filepath.Join(o.OutputDir, o.OutputSrc)
}

// Stager plans a full rebuild of the output tree.
type Stager struct {
	fs     afero.Fs
	opts   Options
	logger *slog.Logger
}

// New creates a stager. A nil logger uses slog.Default().
func New(fsys afero.Fs, opts Options, logger *slog.Logger) *Stager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stager{fs: fsys, opts: opts, logger: logger}
}

// Plan returns the ordered operations staging report into the output tree.
// The library is copied verbatim, nothing in it is skipped.
func (s *Stager) Plan(report *discovery.Report) ([]generator.Operation, error) {
	out := filepath.Clean(s.opts.OutputDir)
	srcRoot := s.opts.SourceRoot()

	ops := []generator.Operation{
		&generator.RemoveAllOp{Fs: s.fs, Path: out},
		&generator.MkdirOp{Fs: s.fs, Path: out},
	}

	for _, f := range s.opts.SupportFiles {
		ops = append(ops, &generator.CopyFileOp{
			Fs:  s.fs,
			Src: filepath.FromSlash(f.From),
			Dst: filepath.Join(out, filepath.FromSlash(f.To)),
		})
	}

	libFiles, err := filesystem.ListFiles(s.fs, s.opts.LibraryDir)
	if err != nil {
		return nil, fmt.Errorf("support library: %w", err)
	}
	libRoot := filepath.Join(srcRoot, s.opts.Package)
	for _, rel := range libFiles {
		ops = append(ops, &generator.CopyFileOp{
			Fs:  s.fs,
			Src: filepath.Join(s.opts.LibraryDir, rel),
			Dst: filepath.Join(libRoot, rel),
		})
	}

	for _, f := range report.Files {
		ops = append(ops, &generator.CopyFileOp{
			Fs:  s.fs,
			Src: f.Source,
			Dst: filepath.Join(srcRoot, filepath.FromSlash(f.Dest)),
		})
	}

	s.logger.Debug("planned output tree",
		"output", out,
		"library_files", len(libFiles),
		"source_files", len(report.Files),
		"operations", len(ops))

	return ops, nil
}
