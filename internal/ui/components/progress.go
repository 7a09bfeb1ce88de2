package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/ui/theme"
)

// ProgressBar draws a label, a bar filled to Percent and a trailing
// suffix such as "9/21", all within Width cells.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	Width   int

	// Fill defaults to theme.Secondary.
	Fill color.Color
}

const minBarCells = 4

func (p ProgressBar) View() string {
	var head, tail string
	if p.Label != "" {
		head = theme.Body.Render(p.Label) + "  "
	}
	if p.Suffix != "" {
		tail = "  " + theme.Subtitle.Render(p.Suffix)
	}

	cells := max(minBarCells, p.Width-lipgloss.Width(head)-lipgloss.Width(tail))
	filled := int(float64(cells) * min(max(p.Percent, 0), 1))

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	bar := lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled))

	return head + bar + tail
}

// Fraction returns v/total clamped to [0, 1].
func Fraction(v, total int) float64 {
	if total <= 0 {
		return 0
	}
	return min(max(float64(v)/float64(total), 0), 1)
}
