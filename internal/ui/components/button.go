package components

import (
	"github.com/curanostics/curanostics/internal/ui/theme"
)

// ButtonState selects how a button is drawn.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonFocused
	// ButtonBusy shows an action in flight; it is drawn dimmed and
	// ignores focus.
	ButtonBusy
)

// Button renders an action label. Screens handle Enter themselves; the
// button only reflects focus.
func Button(label string, state ButtonState) string {
	switch state {
	case ButtonFocused:
		return theme.ButtonActive.Render("▸ " + label)
	case ButtonBusy:
		return theme.ButtonBusy.Render(label)
	default:
		return theme.ButtonInactive.Render(label)
	}
}

// ButtonFor returns ButtonFocused when focused is true, ButtonIdle otherwise.
func ButtonFor(focused bool) ButtonState {
	if focused {
		return ButtonFocused
	}
	return ButtonIdle
}
