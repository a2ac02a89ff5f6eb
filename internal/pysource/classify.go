package pysource

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Classifier recognizes classes deriving from Module.Base, for example
// beanie.Document.
type Classifier struct {
	Module string
	Base   string
}

// DefaultClassifier matches Beanie documents.
var DefaultClassifier = Classifier{Module: "beanie", Base: "Document"}

// ClassifyAll returns the names of every class in f, at any nesting depth and
// in source order, with a base expression that resolves to Module.Base.
//
// An attribute base X.Base matches when X is imported as Module, or when X is
// not bound by any import and is literally Module. A bare base matches only
// when the name is imported from Module as Base.
func (c Classifier) ClassifyAll(f *File) []string {
	bindings := f.Bindings()

	var names []string
	walk(f.root(), func(n *sitter.Node) {
		if n.Type() != "class_definition" {
			return
		}
		name := n.ChildByFieldName("name")
		supers := n.ChildByFieldName("superclasses")
		if name == nil || supers == nil {
			return
		}
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			if c.matches(f, supers.NamedChild(i), bindings) {
				names = append(names, f.text(name))
				return
			}
		}
	})
	return names
}

// Classify returns the first class in f that derives from Module.Base.
func (c Classifier) Classify(f *File) (string, bool) {
	names := c.ClassifyAll(f)
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

func (c Classifier) matches(f *File, base *sitter.Node, bindings Bindings) bool {
	switch base.Type() {
	case "identifier":
		b, ok := bindings.Lookup(f.text(base))
		return ok && b.Kind == SymbolBinding && b.Module == c.Module && b.Symbol == c.Base

	case "attribute":
		object, attr := base.ChildByFieldName("object"), base.ChildByFieldName("attribute")
		if object == nil || attr == nil || object.Type() != "identifier" || f.text(attr) != c.Base {
			return false
		}
		x := f.text(object)
		if b, ok := bindings.Lookup(x); ok {
			return b.Kind == ModuleBinding && b.Module == c.Module
		}
		return x == c.Module
	}
	return false
}
