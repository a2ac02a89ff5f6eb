// Package input provides interactive terminal prompts.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter. Commands pass cmd.InOrStdin() and cmd.OutOrStdout().
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question.
// Returns true for y/yes (any case). Empty input or a read error returns defaultYes.
//
//	if p.Confirm("Overwrite sequel.yaml?", false) { ... }
//	// Displays: Overwrite sequel.yaml? [y/N]: _
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return defaultYes
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer == "" {
		return defaultYes
	}

	return answer == "y" || answer == "yes"
}
