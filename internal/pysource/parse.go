package pysource

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// File is a parsed Python source file.
type File struct {
	Path   string
	Source []byte

	tree *sitter.Tree
}

// ParseError reports a source file whose syntax tree contains an error.
type ParseError struct {
	Path   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: invalid Python syntax", e.Path, e.Line, e.Column)
}

// Parser wraps a tree-sitter parser configured for Python.
// A Parser is not safe for concurrent use.
type Parser struct {
	p *sitter.Parser
}

// NewParser creates a Python parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{p: p}
}

// Close releases the underlying parser.
func (p *Parser) Close() {
	p.p.Close()
}

// Parse parses src. A syntax error anywhere in the file is returned as a
// *ParseError; no partial tree is handed back.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*File, error) {
	tree, err := p.p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		line, col := 1, 1
		if bad := firstError(root); bad != nil {
			pt := bad.StartPoint()
			line, col = int(pt.Row)+1, int(pt.Column)+1
		}
		tree.Close()
		return nil, &ParseError{Path: path, Line: line, Column: col}
	}

	return &File{Path: path, Source: src, tree: tree}, nil
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

func (f *File) root() *sitter.Node {
	return f.tree.RootNode()
}

func (f *File) text(n *sitter.Node) string {
	return n.Content(f.Source)
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !(c.HasError() || c.IsMissing()) {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

// walk visits n and its named descendants in document order.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			walk(c, visit)
		}
	}
}
