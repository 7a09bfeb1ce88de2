// Package screen defines what the app needs from each page it can show.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/curanostics/curanostics/internal/ui/layout"
)

// Screen is one page of the dashboard. The app draws the header and
// footer; View fills the space between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header trail.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler screens receive Esc while HandlesEscape is true.
// Otherwise Esc closes them.
type EscapeHandler interface {
	HandlesEscape() bool
}
