package components

import (
	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/ui/theme"
)

// Card wraps content in a rounded-border card at the given outer width.
func Card(title, content string, width int) string {
	body := content
	if title != "" {
		body = theme.Label.Render(title) + "\n" + content
	}
	return theme.Card.
		Width(width).
		Render(body)
}

// Badge renders a short inline status label.
func Badge(text string, style lipgloss.Style) string {
	return style.Render("[" + text + "]")
}
