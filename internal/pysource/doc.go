// Package pysource parses Python source files with tree-sitter and answers
// structural questions about them: which names the imports bind, and which
// classes inherit from a given ORM base class.
package pysource
