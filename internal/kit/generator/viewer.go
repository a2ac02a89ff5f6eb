package generator

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// pagerThreshold is the diff length (in lines) above which ShowDiff pages.
const pagerThreshold = 20

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ShowDiff writes diff to out. Long diffs are shown in a scrollable
// full-screen viewer when out is an interactive terminal.
func ShowDiff(out io.Writer, path, diff string) error {
	if strings.Count(diff, "\n") <= pagerThreshold || !isTerminal(out) {
		_, err := fmt.Fprint(out, diff)
		return err
	}

	p := tea.NewProgram(newDiffViewerModel(path, diff), tea.WithAltScreen(), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to show diff: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// diffViewerModel is the BubbleTea model for showing diffs
type diffViewerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// header + footer
		const chrome = 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-chrome)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	title := fmt.Sprintf("─ Diff: %s ", m.path)
	b.WriteString(borderStyle.Render("┌"+title+strings.Repeat("─", maxInt(0, m.viewport.Width-len(title)+4))+"┐") + "\n")

	for _, line := range strings.Split(m.viewport.View(), "\n") {
		b.WriteString(borderStyle.Render("│") + " " + line + "\n")
	}

	footer := fmt.Sprintf(" %3.f%%  [↑/↓] Scroll  [q] Quit ", m.viewport.ScrollPercent()*100)
	b.WriteString(mutedStyle.Render("└"+strings.Repeat("─", maxInt(0, m.viewport.Width-len(footer)+4))+footer+"┘") + "\n")
	return b.String()
}
