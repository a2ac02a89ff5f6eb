package pyimports

import (
	"sort"
	"strings"
)

// Normalize sorts the first import block of src. Files without imports are
// returned unchanged.
func Normalize(src []byte, opts Options) ([]byte, error) {
	lines := strings.Split(string(src), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	first := -1
	for i, line := range lines {
		if isImportStart(line) {
			first = i
			break
		}
	}
	if first < 0 {
		return src, nil
	}

	// Comments directly above the first import travel with it.
	start := first
	for start > 0 && strings.HasPrefix(lines[start-1], "#") {
		start--
	}

	var stmts []statement
	var pending []string
	restStart := len(lines)

	i := start
scan:
	for i < len(lines) {
		line := lines[i]
		switch {
		case strings.TrimSpace(line) == "":
			i++
		case strings.HasPrefix(line, "#"):
			if pending == nil {
				restStart = i
			}
			pending = append(pending, line)
			i++
		case isImportStart(line):
			text, next, inline, err := readStatement(lines, i)
			if err != nil {
				return nil, err
			}
			st, err := parseStatement(text)
			if err != nil {
				return nil, err
			}
			st.comments = append(pending, inline...)
			stmts = append(stmts, st)
			pending = nil
			restStart = len(lines)
			i = next
		default:
			if pending == nil {
				restStart = i
			}
			break scan
		}
	}

	rest := trimLeadingBlank(lines[restStart:])

	out := append([]string{}, lines[:start]...)
	out = append(out, render(stmts, opts)...)
	if len(rest) > 0 {
		for n := blankLinesBefore(rest[0]); n > 0; n-- {
			out = append(out, "")
		}
		out = append(out, rest...)
	}

	return []byte(strings.Join(out, "\n") + "\n"), nil
}

func trimLeadingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return lines
}

func blankLinesBefore(line string) int {
	for _, prefix := range []string{"def ", "class ", "async def ", "@"} {
		if strings.HasPrefix(line, prefix) {
			return 2
		}
	}
	return 1
}

type straightKey struct {
	module string
	alias  string
}

type fromGroup struct {
	names    map[string]bool
	aliased  map[importName]bool
	star     bool
	comments []string
}

type sectionImports struct {
	straight         map[straightKey]bool
	straightComments map[straightKey][]string
	from             map[string]*fromGroup
}

func newSectionImports() *sectionImports {
	return &sectionImports{
		straight:         map[straightKey]bool{},
		straightComments: map[straightKey][]string{},
		from:             map[string]*fromGroup{},
	}
}

func render(stmts []statement, opts Options) []string {
	sections := map[Section]*sectionImports{}
	section := func(module string) *sectionImports {
		s := opts.SectionOf(module)
		if sections[s] == nil {
			sections[s] = newSectionImports()
		}
		return sections[s]
	}

	for _, st := range stmts {
		if !st.from {
			for i, n := range st.names {
				key := straightKey{module: n.name, alias: n.alias}
				sec := section(n.name)
				sec.straight[key] = true
				if i == 0 {
					sec.straightComments[key] = append(sec.straightComments[key], st.comments...)
				}
			}
			continue
		}

		sec := section(st.module)
		g := sec.from[st.module]
		if g == nil {
			g = &fromGroup{names: map[string]bool{}, aliased: map[importName]bool{}}
			sec.from[st.module] = g
		}
		g.comments = append(g.comments, st.comments...)
		for _, n := range st.names {
			switch {
			case n.name == "*":
				g.star = true
			case n.alias != "" && n.alias != n.name:
				g.aliased[n] = true
			default:
				g.names[n.name] = true
			}
		}
	}

	var out []string
	for s := Future; s <= LocalFolder; s++ {
		sec := sections[s]
		if sec == nil {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, sec.lines()...)
	}
	return out
}

func (s *sectionImports) lines() []string {
	var out []string

	keys := make([]straightKey, 0, len(s.straight))
	for k := range s.straight {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if a, b := moduleKey(keys[i].module), moduleKey(keys[j].module); a != b {
			return a < b
		}
		return keys[i].alias < keys[j].alias
	})
	for _, k := range keys {
		out = append(out, s.straightComments[k]...)
		if k.alias != "" {
			out = append(out, "import "+k.module+" as "+k.alias)
		} else {
			out = append(out, "import "+k.module)
		}
	}

	modules := make([]string, 0, len(s.from))
	for m := range s.from {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return moduleKey(modules[i]) < moduleKey(modules[j]) })

	for _, m := range modules {
		g := s.from[m]
		out = append(out, g.comments...)
		if g.star {
			out = append(out, "from "+m+" import *")
		}
		if len(g.names) > 0 {
			names := make([]string, 0, len(g.names))
			for n := range g.names {
				names = append(names, n)
			}
			sort.Slice(names, func(i, j int) bool { return nameKey(names[i]) < nameKey(names[j]) })
			out = append(out, "from "+m+" import "+strings.Join(names, ", "))
		}
		aliased := make([]importName, 0, len(g.aliased))
		for n := range g.aliased {
			aliased = append(aliased, n)
		}
		sort.Slice(aliased, func(i, j int) bool {
			if a, b := nameKey(aliased[i].name), nameKey(aliased[j].name); a != b {
				return a < b
			}
			return aliased[i].alias < aliased[j].alias
		})
		for _, n := range aliased {
			out = append(out, "from "+m+" import "+n.name+" as "+n.alias)
		}
	}

	return out
}

// moduleKey orders modules case-insensitively, falling back to the exact name
// so distinct spellings never compare equal.
func moduleKey(module string) string {
	return strings.ToLower(module) + "\x00" + module
}

// nameKey orders imported names CONSTANTS first, then Classes, then the rest.
func nameKey(name string) string {
	prefix := "C"
	switch {
	case len(name) > 1 && strings.ToUpper(name) == name && strings.ToLower(name) != name:
		prefix = "A"
	case name[:1] != strings.ToLower(name[:1]):
		prefix = "B"
	}
	return prefix + strings.ToLower(name) + "\x00" + name
}
