// Package generator provides the building blocks sequel uses to turn a
// discovery report into files on disk.
//
// # Features
//
//   - Operations: validate-then-execute filesystem steps over an afero.Fs
//   - Template rendering with helper functions for Python output
//   - Myers diff for previewing regenerated files
//   - A scrollable diff viewer for long diffs on a terminal
//
// # Operations
//
// Every step of a build is an Operation. Execute validates all of them
// before running any, so a missing source aborts before the output tree is
// touched:
//
//	ops := []generator.Operation{
//	    &generator.RemoveAllOp{Fs: fs, Path: "dist"},
//	    &generator.CopyFileOp{Fs: fs, Src: "Dockerfile", Dst: "dist/Dockerfile"},
//	    &generator.WriteFileOp{Fs: fs, Path: "dist/src/main.py", Content: src, Mode: 0644},
//	}
//	err := generator.Execute(ctx, ops, generator.ExecuteOptions{})
package generator
