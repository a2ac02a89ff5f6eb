package pysource

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// BindingKind says what a name introduced by an import refers to.
type BindingKind int

const (
	// ModuleBinding binds a name to a module (import x, import x as y).
	ModuleBinding BindingKind = iota
	// SymbolBinding binds a name to a member of a module (from x import y).
	SymbolBinding
)

// Binding is the target of one imported name.
type Binding struct {
	Kind   BindingKind
	Module string
	// Symbol is set for SymbolBinding only.
	Symbol string
}

// Target returns the dotted name the binding refers to.
func (b Binding) Target() string {
	if b.Kind == SymbolBinding {
		return b.Module + "." + b.Symbol
	}
	return b.Module
}

// Bindings maps local names to what they were imported as.
type Bindings map[string]Binding

// Lookup returns the binding for name.
func (b Bindings) Lookup(name string) (Binding, bool) {
	binding, ok := b[name]
	return binding, ok
}

// Bindings collects the names bound by the file's import statements.
// Later imports shadow earlier ones. Relative and wildcard imports bind
// nothing.
func (f *File) Bindings() Bindings {
	out := Bindings{}
	walk(f.root(), func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			f.bindImport(n, out)
		case "import_from_statement":
			f.bindFromImport(n, out)
		}
	})
	return out
}

// import a.b.c binds a to module a; import a.b.c as x binds x to module a.b.c.
func (f *File) bindImport(n *sitter.Node, out Bindings) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "dotted_name":
			module := f.text(c)
			head, _, _ := strings.Cut(module, ".")
			out[head] = Binding{Kind: ModuleBinding, Module: head}
		case "aliased_import":
			name, alias := c.ChildByFieldName("name"), c.ChildByFieldName("alias")
			if name == nil || alias == nil {
				continue
			}
			out[f.text(alias)] = Binding{Kind: ModuleBinding, Module: f.text(name)}
		}
	}
}

func (f *File) bindFromImport(n *sitter.Node, out Bindings) {
	if n.NamedChildCount() == 0 {
		return
	}
	moduleNode := n.NamedChild(0)
	if moduleNode.Type() != "dotted_name" {
		// relative_import
		return
	}
	module := f.text(moduleNode)

	for i := 1; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "dotted_name":
			symbol := f.text(c)
			out[symbol] = Binding{Kind: SymbolBinding, Module: module, Symbol: symbol}
		case "aliased_import":
			name, alias := c.ChildByFieldName("name"), c.ChildByFieldName("alias")
			if name == nil || alias == nil {
				continue
			}
			out[f.text(alias)] = Binding{Kind: SymbolBinding, Module: module, Symbol: f.text(name)}
		}
	}
}
