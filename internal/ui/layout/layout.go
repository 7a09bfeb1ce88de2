// Package layout draws the frame around every screen: a header with the
// brand and navigation trail, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/ui/theme"
)

// Smallest terminal the dashboard draws in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// MaxContentWidth caps forms and cards on wide terminals.
const MaxContentWidth = 72

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentWidth is the width of centered cards for a terminal this wide.
func ContentWidth(width int) int {
	return min(max(width-6, 20), MaxContentWidth)
}

// Center places block in the middle of a width x height area.
func Center(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Please enlarge the terminal to at least %d×%d.\n\nIt is %d×%d now.",
		MinWidth, MinHeight, width, height)
	return Center(theme.Body.Render(msg), width, height)
}

// bar is the rounded box shared by header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader puts the brand on the left, title in the middle and the
// patient's name on the right. An over-long title is cut from the left so
// the current screen stays visible.
func RenderHeader(title, patient string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(" Curanostics")
	who := ""
	if patient != "" {
		who = theme.Subtitle.Render("● "+patient) + " "
	}

	inner := max(width-4, 0)
	room := inner - lipgloss.Width(brand) - lipgloss.Width(who) - 2
	if runes := []rune(title); room > 1 && len(runes) > room {
		title = "…" + string(runes[len(runes)-room+1:])
	}
	mid := theme.Body.Render(title)

	left := max((inner-lipgloss.Width(mid))/2-lipgloss.Width(brand), 1)
	right := max(inner-lipgloss.Width(brand)-left-lipgloss.Width(mid)-lipgloss.Width(who), 1)

	return bar(width).Render(brand + strings.Repeat(" ", left) + mid + strings.Repeat(" ", right) + who)
}

func RenderFooter(hints []KeyHint, width int) string {
	key := theme.Body.Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + theme.Subtitle.Render(h.Description)
	}
	return bar(width).Render(" " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer into exactly height
// lines, clipping content that does not fit.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
