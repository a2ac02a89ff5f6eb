package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
)

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderFS renders a template read from a filesystem, usually an embed.FS.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.lookup("fs:"+path, func() ([]byte, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return b, nil
	}, path)
	if err != nil {
		return nil, err
	}
	return r.executeTemplate(tmpl, data)
}

func (r *Renderer) lookup(key string, load func() ([]byte, error), name string) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	src, err := load()
	if err != nil {
		return nil, err
	}

	tmpl, err = template.New(name).Funcs(r.funcMap).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()

	return tmpl, nil
}

// executeTemplate executes a parsed template with the given data
func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"pyString":   PyString,   // /items → '/items'
		"pyDQString": PyDQString, // MONGODB → "MONGODB"
	}
}

// PyString renders s as a single-quoted Python string literal.
func PyString(s string) string {
	return "'" + pyEscape(s, '\'') + "'"
}

// PyDQString renders s as a double-quoted Python string literal.
func PyDQString(s string) string {
	return `"` + pyEscape(s, '"') + `"`
}

func pyEscape(s string, quote rune) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == quote:
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
