// Package pathname turns project-relative file paths into names that are
// valid Python identifiers and dotted import paths.
//
// All functions take and return slash-separated paths.
package pathname

import (
	"path"
	"strings"
)

var segmentReplacer = strings.NewReplacer(
	"[", "_",
	"]", "_",
	"-", "_",
	" ", "_",
)

// Sanitize replaces every '[', ']', '-' and space in segment with '_'.
// It is total and idempotent.
func Sanitize(segment string) string {
	return segmentReplacer.Replace(segment)
}

// SanitizePath applies Sanitize to each segment of rel.
func SanitizePath(rel string) string {
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = Sanitize(s)
	}
	return strings.Join(segments, "/")
}

// ModulePath returns the dotted module path of a project-relative source
// file: sanitized segments, ext removed from the end, separators as dots.
//
//	ModulePath("api/airports/[code]/route.py", ".py") == "api.airports._code_.route"
func ModulePath(rel, ext string) string {
	return strings.ReplaceAll(strings.TrimSuffix(SanitizePath(rel), ext), "/", ".")
}

// Identifier turns a dotted module path into an identifier by replacing dots.
func Identifier(modulePath string) string {
	return strings.ReplaceAll(modulePath, ".", "_")
}

// TopLevel returns the first segment of a cleaned relative path.
func TopLevel(rel string) string {
	rel = path.Clean(rel)
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return rel
}

// Within reports whether rel lies strictly below dir.
// Both are slash-separated and relative to the same root.
func Within(rel, dir string) bool {
	dir = strings.Trim(path.Clean(dir), "/")
	if dir == "." || dir == "" {
		return true
	}
	return strings.HasPrefix(path.Clean(rel), dir+"/")
}
