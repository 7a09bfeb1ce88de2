// Package history lists past screening results and symptom check-ins.
package history

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/screen"
	"github.com/curanostics/curanostics/internal/screening"
	"github.com/curanostics/curanostics/internal/ui/components"
	"github.com/curanostics/curanostics/internal/ui/layout"
	"github.com/curanostics/curanostics/internal/ui/theme"
)

// Tab selects which list is shown.
type Tab int

const (
	TabSurveys Tab = iota
	TabSymptoms
)

func (t Tab) String() string {
	if t == TabSymptoms {
		return "Symptoms"
	}
	return "Surveys"
}

// HistoryScreen displays surveys and symptom logs, newest first.
type HistoryScreen struct {
	surveys  []screening.SurveyResult
	symptoms []patient.SymptomLog
	tab      Tab
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen over a snapshot of the patient record.
func New(p patient.Profile) *HistoryScreen {
	s := &HistoryScreen{
		surveys:  slices.Clone(p.Surveys),
		symptoms: slices.Clone(p.Symptoms),
		expanded: make(map[int]bool),
	}
	slices.Reverse(s.surveys)
	slices.Reverse(s.symptoms)
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Surveys/Symptoms"},
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Tab returns the visible list.
func (s *HistoryScreen) Tab() Tab { return s.tab }

func (s *HistoryScreen) count() int {
	if s.tab == TabSymptoms {
		return len(s.symptoms)
	}
	return len(s.surveys)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "tab", "shift+tab":
		s.tab = 1 - s.tab
		s.selected = 0
		clear(s.expanded)
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.count()-1 {
			s.selected++
		}
	case "enter":
		if s.count() > 0 {
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	if s.count() == 0 {
		empty := "No screenings yet. Take a GAD-7 or SDOH screening from the dashboard."
		if s.tab == TabSymptoms {
			empty = "No symptom check-ins yet."
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(empty))
		return b.String()
	}

	cw := layout.ContentWidth(width)
	for i := range s.count() {
		var line string
		var details []string
		if s.tab == TabSymptoms {
			line, details = symptomRow(s.symptoms[i])
		} else {
			line, details = surveyRow(s.surveys[i])
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Width(cw).Render(prefix+line)))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw)
			for _, d := range details {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					dim.Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, t := range []Tab{TabSurveys, TabSymptoms} {
		label := fmt.Sprintf(" %s ", t)
		if t == s.tab {
			tabs = append(tabs, theme.Selected.Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.Unselected.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, "  ")
}

func surveyRow(r screening.SurveyResult) (string, []string) {
	line := fmt.Sprintf("%s  %-6s  score %-2d  %s", r.Date, r.Type, r.Score, r.Interpretation)
	if r.Type == screening.InstrumentGAD7 && r.Score > 9 {
		line += "  " + components.Badge("follow up", theme.Risk)
	}

	var details []string
	if r.RequestedBy != "" {
		details = append(details, "Requested by: "+r.RequestedBy)
	}
	for _, k := range slices.Sorted(maps.Keys(r.Details)) {
		details = append(details, k+": "+r.Details[k])
	}
	if len(details) == 0 {
		details = []string{"No details recorded"}
	}
	return line, details
}

func symptomRow(l patient.SymptomLog) (string, []string) {
	line := fmt.Sprintf("%s  fatigue %d  nausea %d  pain %d  mood %d",
		l.Date, l.Fatigue, l.Nausea, l.Pain, l.Mood)
	var details []string
	if l.Notes != "" {
		details = append(details, "Notes: "+l.Notes)
	}
	if len(l.OtherSymptoms) > 0 {
		details = append(details, "Other: "+strings.Join(l.OtherSymptoms, ", "))
	}
	if len(details) == 0 {
		details = []string{"No notes"}
	}
	return line, details
}
