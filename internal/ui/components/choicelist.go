package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/ui/theme"
)

// ChoiceList renders a question's options with a cursor. It holds no
// answer state: callers pass the marked options when rendering.
type ChoiceList struct {
	Options []string
	Cursor  int
	Multi   bool
}

// NewChoiceList creates a list with the cursor on the first option.
func NewChoiceList(options []string, multi bool) ChoiceList {
	return ChoiceList{Options: options, Multi: multi}
}

// View renders the options. focused controls whether the cursor is drawn.
func (c ChoiceList) View(marked func(label string) bool, focused bool) string {
	var b strings.Builder
	for i, opt := range c.Options {
		on := marked != nil && marked(opt)

		box := "( )"
		if on {
			box = "(•)"
		}
		if c.Multi {
			box = "[ ]"
			if on {
				box = "[x]"
			}
		}

		prefix := "  "
		if focused && i == c.Cursor {
			prefix = "▸ "
		}
		line := prefix + box + " " + opt

		var style lipgloss.Style
		switch {
		case on:
			style = theme.Checked
		case focused && i == c.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
