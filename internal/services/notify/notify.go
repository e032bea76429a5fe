// Package notify reports outcomes to the user on a styled console stream.
package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Notifier surfaces user-facing messages.
type Notifier interface {
	Info(message string)
	Warn(message string)
	Error(message string)
}

const (
	infoLabel  = "info"
	warnLabel  = "warn"
	errorLabel = "error"

	lineFormat = "%s %s\n"
)

// Console writes one styled line per message. Colors are dropped
// automatically when the writer is not a terminal.
type Console struct {
	writer     io.Writer
	infoStyle  lipgloss.Style
	warnStyle  lipgloss.Style
	errorStyle lipgloss.Style
}

// NewConsole constructs a Console notifier bound to writer.
func NewConsole(writer io.Writer) *Console {
	renderer := lipgloss.NewRenderer(writer)
	return &Console{
		writer:     writer,
		infoStyle:  renderer.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Bold(true),
		warnStyle:  renderer.NewStyle().Foreground(lipgloss.Color("#FFE66D")).Bold(true),
		errorStyle: renderer.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}

// Info reports a successful or neutral outcome.
func (console *Console) Info(message string) {
	console.write(console.infoStyle, infoLabel, message)
}

// Warn reports a recoverable problem.
func (console *Console) Warn(message string) {
	console.write(console.warnStyle, warnLabel, message)
}

// Error reports a failed action.
func (console *Console) Error(message string) {
	console.write(console.errorStyle, errorLabel, message)
}

func (console *Console) write(style lipgloss.Style, label string, message string) {
	if console.writer == nil {
		return
	}
	fmt.Fprintf(console.writer, lineFormat, style.Render(label+":"), message)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Info(string)  {}
func (Discard) Warn(string)  {}
func (Discard) Error(string) {}

var (
	_ Notifier = (*Console)(nil)
	_ Notifier = Discard{}
)
