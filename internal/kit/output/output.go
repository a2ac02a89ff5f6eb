package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var (
	mu          sync.Mutex
	writer      io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// SetWriter redirects all messages to w. A nil writer restores stdout.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	writer = w
}

// Success prints a success message with 🔥 and green color.
//
//	output.Success("Built 3 routes")
func Success(msg string) {
	emit(successStyle, "🔥 "+msg)
}

// Error prints an error message with ❌ and red color.
func Error(msg string) {
	emit(errorStyle, "❌ "+msg)
}

// Warn prints a warning that does not stop the command.
func Warn(msg string) {
	emit(warnStyle, "⚠️  "+msg)
}

// Info prints an informational message with ℹ️ and cyan color.
func Info(msg string) {
	emit(infoStyle, "ℹ️  "+msg)
}

// Step prints an indented step message in gray.
func Step(msg string) {
	emit(stepStyle, "   "+msg)
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if IsVerbose() {
		emit(stepStyle, "🔍 "+msg)
	}
}

func emit(style lipgloss.Style, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(writer, style.Render(msg))
}
