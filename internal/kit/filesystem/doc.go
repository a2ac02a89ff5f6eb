// Package filesystem walks and copies trees through an afero.Fs so callers can
// run against the real disk (afero.NewOsFs) or a virtual tree
// (afero.NewMemMapFs) in tests.
//
// Walk visits entries in lexical order, which keeps everything built on top
// of it independent of the host's directory listing order:
//
//	err := filesystem.Walk(fs, "src", filesystem.WalkOptions{
//	    IgnoreDirs: []string{"__pycache__"},
//	}, func(path string, info os.FileInfo) error {
//	    fmt.Println(path)
//	    return nil
//	})
package filesystem
