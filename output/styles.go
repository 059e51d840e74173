// Package output provides styling helpers for terminal output.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles provides styled output helpers for the CLI.
type Styles struct {
	w io.Writer

	success lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
	path    lipgloss.Style
	keyword lipgloss.Style
	dim     lipgloss.Style
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		w:       w,
		success: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"}).Bold(true),
		err:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}).Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FFAF00", Dark: "#FFAF00"}),
		path:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"}),
		keyword: lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string {
	return s.success.Render(text)
}

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string {
	return s.err.Render(text)
}

// Warning returns a styled warning (yellow).
func (s *Styles) Warning(text string) string {
	return s.warning.Render(text)
}

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string {
	return s.path.Render(text)
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.keyword.Render(text)
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.dim.Render(text)
}

// Width returns the terminal width for the output, or the fallback when the
// writer is not a terminal.
func (s *Styles) Width(fallback int) int {
	f, ok := s.w.(*os.File)
	if !ok {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
