// Package pyimports rewrites the leading import block of a Python file into
// isort's canonical layout.
//
// Imports are grouped into the sections FUTURE, STDLIB, THIRDPARTY,
// FIRSTPARTY and LOCALFOLDER, separated by one blank line. Within a section,
// "import x" lines precede "from x import y" lines, modules sort
// case-insensitively, and the names of one module's from-imports are merged and
// ordered CONSTANTS, Classes, functions. Aliased names keep their own line.
//
// Normalize only moves import statements and adjusts the blank lines around
// them. Running it on its own output returns the input unchanged.
package pyimports
