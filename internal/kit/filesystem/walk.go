package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultIgnoreDirs are Python project directories that never hold sources to ship.
var DefaultIgnoreDirs = []string{
	"__pycache__", ".venv", "venv", ".git",
	"node_modules", ".mypy_cache", ".pytest_cache",
}

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	IgnoreDirs     []string // Directories to skip (default: DefaultIgnoreDirs)
	IgnorePatterns []string // File patterns to skip (e.g., "*.pyc")
	IncludeHidden  bool     // Include hidden files/dirs (default: false)
}

// Walk traverses a directory tree in lexical order with configurable ignores.
// The visitor is called for each file and directory that is not ignored.
// Return filepath.SkipDir from visitor to skip a directory.
func Walk(fsys afero.Fs, rootPath string, opts WalkOptions, visitor func(path string, info os.FileInfo) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}

	return afero.Walk(fsys, rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != rootPath && !opts.IncludeHidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path != rootPath && contains(ignoreDirs, info.Name()) {
				return filepath.SkipDir
			}
			return visitor(path, info)
		}

		for _, pattern := range opts.IgnorePatterns {
			if matched, _ := filepath.Match(pattern, info.Name()); matched {
				return nil
			}
		}

		return visitor(path, info)
	})
}

// WalkFiles is Walk restricted to regular files.
func WalkFiles(fsys afero.Fs, rootPath string, opts WalkOptions, visitor func(path string, info os.FileInfo) error) error {
	return Walk(fsys, rootPath, opts, func(path string, info os.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		return visitor(path, info)
	})
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
