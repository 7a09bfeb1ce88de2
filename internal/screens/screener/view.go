package screener

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/screening"
	"github.com/curanostics/curanostics/internal/ui/components"
	"github.com/curanostics/curanostics/internal/ui/layout"
	"github.com/curanostics/curanostics/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.result != nil {
		return layout.Center(s.resultView(layout.ContentWidth(width)), width, height)
	}

	cw := layout.ContentWidth(width)
	lines, cursorLine := s.bodyLines(cw)

	header := s.headerView(cw)
	footer := ""
	if s.errMsg != "" {
		footer = theme.Danger.Render(s.errMsg)
	}

	avail := height - lipgloss.Height(header) - 2
	if footer != "" {
		avail -= 2
	}
	lines = s.window(lines, cursorLine, avail)

	block := header + "\n\n" + strings.Join(lines, "\n")
	if footer != "" {
		block += "\n\n" + footer
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *Screen) headerView(cw int) string {
	inst := s.run.Instrument()
	label := screening.StepLabel(inst, s.step)

	title := theme.Title.Render(InstrumentTitle(inst))
	gap := cw - lipgloss.Width(title) - lipgloss.Width(label)
	if gap < 1 {
		gap = 1
	}
	top := title + strings.Repeat(" ", gap) + theme.Subtitle.Render(label)

	bar := components.ProgressBar{Percent: screening.Progress(s.step), Width: cw}
	return top + "\n" + bar.View()
}

// bodyLines renders the step as individual lines and reports the line the
// cursor is on.
func (s *Screen) bodyLines(cw int) ([]string, int) {
	wrap := lipgloss.NewStyle().Width(cw)

	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(strings.TrimRight(block, "\n"), "\n")...)
	}

	add(wrap.Inherit(theme.Title).Render(s.step.Title))
	if s.step.Description != "" {
		add(wrap.Inherit(theme.Hint).Render(s.step.Description))
	}

	cursorLine := 0
	for qi, q := range s.step.Questions {
		lines = append(lines, "")
		add(wrap.Inherit(theme.Body).Bold(true).Render(q.Prompt))

		list := components.NewChoiceList(q.Labels(), q.Modality == screening.MultiChoice)
		cur := s.rows[s.cursor]
		focused := !cur.isAction() && cur.question == qi
		if focused {
			list.Cursor = cur.option
			cursorLine = len(lines) + cur.option
		}
		add(list.View(s.marked(q), focused))
	}

	if s.hasAction() {
		lines = append(lines, "")
		if s.rows[s.cursor].isAction() {
			cursorLine = len(lines)
		}
		add(components.Button(s.actionLabel(), components.ButtonFor(s.rows[s.cursor].isAction())))
	}
	return lines, cursorLine
}

// window keeps the cursor line visible when the step is taller than the
// available height.
func (s *Screen) window(lines []string, cursorLine, height int) []string {
	if height <= 0 || len(lines) <= height {
		s.offset = 0
		return lines
	}
	if cursorLine < s.offset {
		s.offset = cursorLine
	}
	if cursorLine >= s.offset+height {
		s.offset = cursorLine - height + 1
	}
	if s.offset > len(lines)-height {
		s.offset = len(lines) - height
	}
	return lines[s.offset : s.offset+height]
}

// marked reports whether label is part of the current answer to q.
func (s *Screen) marked(q screening.Question) func(string) bool {
	a := s.run.Answers()
	return func(label string) bool {
		switch q.Modality {
		case screening.SingleChoice:
			c, ok := a.Choice(q.ID)
			return ok && c == label
		case screening.MultiChoice:
			return slices.Contains(a.Selected(q.ID), label)
		default:
			v, ok := a.Scale(q.ID)
			opt, found := q.Option(label)
			return ok && found && v == opt.Value
		}
	}
}

func (s *Screen) resultView(cw int) string {
	r := s.result
	var b strings.Builder

	heading, blurb := "Assessment Complete",
		"Thank you for completing the Social Needs Screening. This information has been securely shared with your provider."
	if r.Type == screening.InstrumentGAD7 {
		heading, blurb = "Screening Complete",
			"Your responses have been recorded and added to your health profile."
	}

	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	b.WriteString(center.Inherit(theme.Checked).Render("✓ " + heading))
	b.WriteString("\n\n")
	b.WriteString(center.Inherit(theme.Subtitle).Render(blurb))
	b.WriteString("\n\n")

	var card strings.Builder
	if r.Type == screening.InstrumentGAD7 {
		bar := components.ProgressBar{
			Label:   "Total Score",
			Percent: components.Fraction(r.Score, screening.GAD7MaxScore),
			Suffix:  fmt.Sprintf("%d/%d", r.Score, screening.GAD7MaxScore),
			Width:   cw - 6,
			Fill:    theme.Primary,
		}
		if r.Score > 9 {
			bar.Fill = theme.Warning
		}
		card.WriteString(bar.View())
		card.WriteString("\n\n")
	}

	style := theme.Body.Bold(true)
	if r.Score > 0 && r.Type == screening.InstrumentSDOH {
		style = theme.Risk
	}
	card.WriteString(style.Render(r.Interpretation))
	card.WriteString("\n")

	for _, k := range slices.Sorted(maps.Keys(r.Details)) {
		card.WriteString("\n")
		card.WriteString(theme.Label.Render(k+": ") + theme.Body.Render(r.Details[k]))
	}
	b.WriteString(components.Card("", card.String(), cw))
	b.WriteString("\n\n")

	b.WriteString(center.Render(components.Button(s.ackLabel(), components.ButtonFocused)))
	return b.String()
}
