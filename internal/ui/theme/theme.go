// Package theme holds the dashboard palette and shared text styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Blues for navigation, the ribbon pink for the brand, amber and
// rose for anything that needs the patient's attention.
var (
	Primary   = lipgloss.Color("#3B82F6")
	Secondary = lipgloss.Color("#22C55E")
	Accent    = lipgloss.Color("#EC4899")
	Warning   = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#16A34A")
	Error     = lipgloss.Color("#F43F5E")

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	BgCard  = lipgloss.Color("#1E293B")
	Border  = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Body     = fg(Text)
	Subtitle = fg(TextDim)
	Title    = fg(Primary).Bold(true)
	Label    = Subtitle.Bold(true)
	Hint     = Subtitle.Italic(true)

	Selected   = Title
	Unselected = Body

	Checked = fg(Success).Bold(true)
	Risk    = fg(Warning).Bold(true)
	Danger  = fg(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

var button = lipgloss.NewStyle().Padding(0, 2)

var (
	ButtonActive   = button.Background(Primary).Foreground(Text).Bold(true)
	ButtonInactive = button.Background(BgCard).Foreground(Text)
	ButtonBusy     = button.Background(BgCard).Foreground(TextDim).Italic(true)
)
