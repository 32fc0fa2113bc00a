// Package markdown renders assistant answers and tool feedback for
// terminal output. Answers are rendered through glamour when standard
// output is a terminal, and left as plain text otherwise.
package markdown

import (
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	lipgloss "github.com/charmbracelet/lipgloss"
	wordwrap "github.com/muesli/reflow/wordwrap"
	termenv "github.com/muesli/termenv"
	uitable "github.com/mutablelogic/go-stylist/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Renderer struct {
	width    int
	renderer *glamour.TermRenderer
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultWidth = 80
	minWidth     = 20
)

var (
	dimStyle = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a renderer which wraps text to the terminal width. When
// plain is true, or standard output is not a terminal, markdown is not
// styled.
func New(plain bool) *Renderer {
	self := new(Renderer)
	self.width = defaultWidth
	if w := uitable.Width(); w > 0 {
		self.width = max(w-4, minWidth)
	} else {
		plain = true
	}
	if plain {
		return self
	}

	// Detect the terminal background for the glamour style
	stylePath := "dark"
	if !termenv.HasDarkBackground() {
		stylePath = "light"
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(stylePath),
		glamour.WithWordWrap(self.width),
	); err == nil {
		self.renderer = r
	}
	return self
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Width returns the wrap width
func (r *Renderer) Width() int {
	return r.width
}

// Answer renders a markdown answer. Plain renderers wrap the text only.
func (r *Renderer) Answer(text string) string {
	if r.renderer != nil {
		if out, err := r.renderer.Render(text); err == nil {
			return strings.TrimSpace(out)
		}
	}
	return wordwrap.String(strings.TrimSpace(text), r.width)
}

// Feedback renders a line of progress, such as a tool call or result,
// wrapped and dimmed when styled
func (r *Renderer) Feedback(role, text string) string {
	wrapped := wordwrap.String(role+": "+strings.TrimSpace(text), r.width)
	if r.renderer == nil {
		return wrapped
	}
	return dimStyle.Render(wrapped)
}
