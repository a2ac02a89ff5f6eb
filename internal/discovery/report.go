package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/simonhull/sequel/internal/pathname"
)

// Model is a document class found under the models subtree.
type Model struct {
	Class      string // Class name, e.g. "Plan"
	ModulePath string // Dotted module path, e.g. "models.beanie.plan"
	RelPath    string // Source path relative to the source root
}

// ImportLine returns the statement importing the model class.
func (m Model) ImportLine() string {
	return fmt.Sprintf("from %s import %s", m.ModulePath, m.Class)
}

// Route is an endpoint file found under the API subtree.
type Route struct {
	Prefix     string // URL prefix without leading slash, e.g. "airports/{code}/plan"
	Alias      string // Router identifier, e.g. "api_airports__code__plan_route_router"
	ModulePath string
	RelPath    string
}

// ImportLine returns the statement importing the route's router under its alias.
func (r Route) ImportLine() string {
	return fmt.Sprintf("from %s import router as %s", r.ModulePath, r.Alias)
}

// RouteFor builds the route for an endpoint file. rel is the raw relative
// path the URL is derived from; modulePath is the sanitized module path of the
// same file.
//
//	RouteFor("airports/[code]/plan/route.py", "route.py", "api.airports._code_.plan.route").Prefix
//	  == "airports/{code}/plan"
func RouteFor(rel, marker, modulePath string) Route {
	prefix := strings.NewReplacer("[", "{", "]", "}", "\\", "/").Replace(rel)
	prefix = strings.TrimSuffix(prefix, marker)
	prefix = strings.TrimRight(prefix, "/")

	return Route{
		Prefix:     prefix,
		Alias:      pathname.Identifier(modulePath) + "_router",
		ModulePath: modulePath,
	}
}

// FileCopy mirrors one source file into the output tree.
type FileCopy struct {
	Source  string // Path on the walked filesystem
	RelPath string // Path relative to the source root
	Dest    string // Sanitized path relative to the output source root
}

// Report is the result of one walk.
type Report struct {
	Models []Model
	Routes []Route
	Files  []FileCopy
}

// HasModels reports whether any document model was discovered.
func (r *Report) HasModels() bool {
	return len(r.Models) > 0
}

// ModelNames returns the model class names in report order.
func (r *Report) ModelNames() []string {
	names := make([]string, len(r.Models))
	for i, m := range r.Models {
		names[i] = m.Class
	}
	return names
}

// Packages returns the sorted top-level names of the mirrored tree with the
// extension removed. These are the first-party packages of the output.
func (r *Report) Packages(ext string) []string {
	seen := map[string]bool{}
	var pkgs []string
	for _, f := range r.Files {
		top := strings.TrimSuffix(pathname.TopLevel(f.Dest), ext)
		if !seen[top] {
			seen[top] = true
			pkgs = append(pkgs, top)
		}
	}
	sort.Strings(pkgs)
	return pkgs
}

func (r *Report) sort() {
	sort.SliceStable(r.Models, func(i, j int) bool { return r.Models[i].RelPath < r.Models[j].RelPath })
	sort.SliceStable(r.Routes, func(i, j int) bool { return r.Routes[i].RelPath < r.Routes[j].RelPath })
	sort.SliceStable(r.Files, func(i, j int) bool { return r.Files[i].RelPath < r.Files[j].RelPath })
}

// check fails on the first name shared by two entries.
func (r *Report) check() error {
	checks := []struct {
		kind string
		keys func(yield func(key, rel string))
	}{
		{"model class", func(yield func(string, string)) {
			for _, m := range r.Models {
				yield(m.Class, m.RelPath)
			}
		}},
		{"route prefix", func(yield func(string, string)) {
			for _, rt := range r.Routes {
				yield("/"+rt.Prefix, rt.RelPath)
			}
		}},
		{"router alias", func(yield func(string, string)) {
			for _, rt := range r.Routes {
				yield(rt.Alias, rt.RelPath)
			}
		}},
		{"output path", func(yield func(string, string)) {
			for _, f := range r.Files {
				yield(f.Dest, f.RelPath)
			}
		}},
	}

	for _, c := range checks {
		owners := map[string][]string{}
		var order []string
		c.keys(func(key, rel string) {
			if _, ok := owners[key]; !ok {
				order = append(order, key)
			}
			owners[key] = append(owners[key], rel)
		})
		for _, key := range order {
			if len(owners[key]) > 1 {
				return &CollisionError{Kind: c.kind, Name: key, Paths: owners[key]}
			}
		}
	}
	return nil
}

// CollisionError reports two source files that would produce the same name
// in the generated output.
type CollisionError struct {
	Kind  string   // "model class", "route prefix", "router alias" or "output path"
	Name  string   // The colliding name
	Paths []string // Relative source paths sharing it
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s %q is produced by %d files: %s",
		e.Kind, e.Name, len(e.Paths), strings.Join(e.Paths, ", "))
}
