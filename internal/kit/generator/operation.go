package generator

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/simonhull/sequel/internal/kit/filesystem"
	"github.com/spf13/afero"
)

// Operation represents a filesystem step that can be validated and executed.
//
// Validate checks preconditions without side effects (sources exist,
// content is present). Execute performs the step and is only called after
// every operation in the batch validated. Description is a one-line summary
// for output (e.g., "Create dist/src/main.py (812 bytes)").
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp creates or replaces a file with content.
//
// Validation rejects nil content (empty is allowed).
// Execution creates parent directories and writes with Mode.
type WriteFileOp struct {
	Fs      afero.Fs
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := op.Fs.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return fmt.Errorf("cannot create directory for %s: %w", op.Path, err)
	}
	return afero.WriteFile(op.Fs, op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// CopyFileOp copies a single file, creating the destination's parents.
type CopyFileOp struct {
	Fs  afero.Fs
	Src string
	Dst string
}

func (op *CopyFileOp) Validate(ctx context.Context) error {
	info, err := op.Fs.Stat(op.Src)
	if err != nil {
		return fmt.Errorf("cannot copy %s: %w", op.Src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot copy %s: is a directory", op.Src)
	}
	return nil
}

func (op *CopyFileOp) Execute(ctx context.Context) error {
	return filesystem.CopyFile(op.Fs, op.Src, op.Dst)
}

func (op *CopyFileOp) Description() string {
	return fmt.Sprintf("Copy %s -> %s", op.Src, op.Dst)
}

// RemoveAllOp deletes a tree. A missing path is not an error.
type RemoveAllOp struct {
	Fs   afero.Fs
	Path string
}

func (op *RemoveAllOp) Validate(ctx context.Context) error {
	if filepath.Clean(op.Path) == "." || filepath.Clean(op.Path) == string(filepath.Separator) {
		return fmt.Errorf("refusing to remove %q", op.Path)
	}
	return nil
}

func (op *RemoveAllOp) Execute(ctx context.Context) error {
	if err := op.Fs.RemoveAll(op.Path); err != nil {
		return fmt.Errorf("removing %s: %w", op.Path, err)
	}
	return nil
}

func (op *RemoveAllOp) Description() string {
	return fmt.Sprintf("Remove %s", op.Path)
}

// MkdirOp creates a directory and its parents.
type MkdirOp struct {
	Fs   afero.Fs
	Path string
}

func (op *MkdirOp) Validate(ctx context.Context) error {
	return nil
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	if err := op.Fs.MkdirAll(op.Path, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", op.Path, err)
	}
	return nil
}

func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create directory %s", op.Path)
}
