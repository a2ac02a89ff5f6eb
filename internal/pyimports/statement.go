package pyimports

import (
	"fmt"
	"strings"
)

type importName struct {
	name  string
	alias string
}

// statement is one parsed import statement.
type statement struct {
	from     bool
	module   string       // from-imports only
	names    []importName // modules for "import", names for "from"
	comments []string
}

func isImportStart(line string) bool {
	return strings.HasPrefix(line, "import ") ||
		(strings.HasPrefix(line, "from ") && strings.Contains(line, " import"))
}

// readStatement joins the physical lines of the statement starting at
// lines[start], following parentheses and backslash continuations. It
// returns the code, the index after the statement and any comments found.
func readStatement(lines []string, start int) (string, int, []string, error) {
	var parts, comments []string
	depth := 0

	for i := start; i < len(lines); i++ {
		code, comment := splitComment(lines[i])
		if comment != "" {
			comments = append(comments, comment)
		}

		depth += strings.Count(code, "(") - strings.Count(code, ")")
		code = strings.TrimSpace(code)
		continued := strings.HasSuffix(code, "\\")
		parts = append(parts, strings.TrimSuffix(code, "\\"))

		if depth <= 0 && !continued {
			return strings.Join(parts, " "), i + 1, comments, nil
		}
	}

	return "", 0, nil, fmt.Errorf("line %d: unterminated import statement", start+1)
}

func splitComment(line string) (code, comment string) {
	i := strings.IndexByte(line, '#')
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

func parseStatement(text string) (statement, error) {
	text = strings.Join(strings.Fields(text), " ")

	if rest, ok := strings.CutPrefix(text, "import "); ok {
		names, err := parseNames(rest)
		if err != nil || len(names) == 0 {
			return statement{}, fmt.Errorf("malformed import %q", text)
		}
		return statement{names: names}, nil
	}

	rest, _ := strings.CutPrefix(text, "from ")
	module, list, ok := strings.Cut(rest, " import ")
	module = strings.TrimSpace(module)
	if !ok || module == "" {
		return statement{}, fmt.Errorf("malformed import %q", text)
	}

	list = strings.TrimSpace(list)
	if strings.HasPrefix(list, "(") {
		if !strings.HasSuffix(list, ")") {
			return statement{}, fmt.Errorf("malformed import %q", text)
		}
		list = list[1 : len(list)-1]
	}

	names, err := parseNames(list)
	if err != nil || len(names) == 0 {
		return statement{}, fmt.Errorf("malformed import %q", text)
	}
	return statement{from: true, module: module, names: names}, nil
}

// parseNames parses "a, b as c," into names. Empty entries are skipped so a
// trailing comma is accepted.
func parseNames(list string) ([]importName, error) {
	var names []importName
	for _, entry := range strings.Split(list, ",") {
		fields := strings.Fields(entry)
		switch {
		case len(fields) == 0:
			continue
		case len(fields) == 1:
			names = append(names, importName{name: fields[0]})
		case len(fields) == 3 && fields[1] == "as":
			names = append(names, importName{name: fields[0], alias: fields[2]})
		default:
			return nil, fmt.Errorf("malformed name %q", strings.TrimSpace(entry))
		}
	}
	return names, nil
}
