package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions configures how diffs are generated and displayed.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines shown around changes. Default: 3
	ContextLines int

	// Width truncates long lines. Default: the terminal width, or 80.
	Width int
}

type editKind int

const (
	editKeep editKind = iota
	editInsert
	editDelete
)

type edit struct {
	kind    editKind
	oldLine int // 1-based, 0 for insertions
	newLine int // 1-based, 0 for deletions
	text    string
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	edits              []edit
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// Diff returns a unified diff between old and newer, or "" when they are equal.
func Diff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	o := DiffOptions{ContextLines: 3}
	if opts != nil {
		if opts.ContextLines > 0 {
			o.ContextLines = opts.ContextLines
		}
		o.Width = opts.Width
	}
	if o.Width <= 0 {
		o.Width = terminalWidth()
	}

	if bytes.Equal(old, newer) {
		return ""
	}
	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n"
	}

	a, b := splitLines(string(old)), splitLines(string(newer))
	if len(a) > 10000 || len(b) > 10000 {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(a), len(b))
	}

	hunks := groupHunks(myers(a, b), o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var out strings.Builder
	out.WriteString(headerStyle.Render("--- "+oldPath) + "\n")
	out.WriteString(headerStyle.Render("+++ "+newPath) + "\n")
	for _, h := range hunks {
		fmt.Fprintf(&out, "%s\n", hunkStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)))
		for _, e := range h.edits {
			text := truncate(e.text, o.Width-2)
			switch e.kind {
			case editInsert:
				out.WriteString(addedStyle.Render("+"+text) + "\n")
			case editDelete:
				out.WriteString(removedStyle.Render("-"+text) + "\n")
			default:
				out.WriteString(" " + text + "\n")
			}
		}
	}
	return out.String()
}

// myers computes the shortest edit script between a and b
// (Myers, "An O(ND) Difference Algorithm and Its Variations", 1986).
func myers(a, b []string) []edit {
	n, m := len(a), len(b)
	limit := n + m
	offset := limit + 1
	v := make([]int, 2*limit+3)
	var trace [][]int

	for d := 0; d <= limit; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		done := false
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				done = true
				break
			}
		}
		if done {
			break
		}
	}

	edits := make([]edit, 0, n+m)
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		vd := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && vd[offset+k-1] < vd[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vd[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			edits = append(edits, edit{kind: editKeep, oldLine: x + 1, newLine: y + 1, text: a[x]})
		}
		if d == 0 {
			break
		}
		if x == prevX {
			y--
			edits = append(edits, edit{kind: editInsert, newLine: y + 1, text: b[y]})
		} else {
			x--
			edits = append(edits, edit{kind: editDelete, oldLine: x + 1, text: a[x]})
		}
	}

	for i, j := 0, len(edits)-1; i < j; i, j = i+1, j-1 {
		edits[i], edits[j] = edits[j], edits[i]
	}
	return edits
}

// groupHunks keeps `context` unchanged lines around each change and merges
// changes whose context overlaps.
func groupHunks(edits []edit, context int) []hunk {
	var changed []int
	for i, e := range edits {
		if e.kind != editKeep {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var hunks []hunk
	start := maxInt(0, changed[0]-context)
	end := minInt(len(edits), changed[0]+context+1)
	for _, idx := range changed[1:] {
		if idx-context <= end {
			end = minInt(len(edits), idx+context+1)
			continue
		}
		hunks = append(hunks, newHunk(edits[start:end]))
		start = maxInt(0, idx-context)
		end = minInt(len(edits), idx+context+1)
	}
	return append(hunks, newHunk(edits[start:end]))
}

func newHunk(edits []edit) hunk {
	h := hunk{edits: edits}
	for _, e := range edits {
		if e.oldLine > 0 && h.oldStart == 0 {
			h.oldStart = e.oldLine
		}
		if e.newLine > 0 && h.newStart == 0 {
			h.newStart = e.newLine
		}
		if e.kind != editInsert {
			h.oldCount++
		}
		if e.kind != editDelete {
			h.newCount++
		}
	}
	return h
}

// isBinary checks the first 8KiB for NUL bytes
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:minInt(len(data), 8192)], 0) != -1
}

// splitLines splits content into lines, dropping the empty tail after a final newline
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func truncate(s string, width int) string {
	if width < 4 || utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
