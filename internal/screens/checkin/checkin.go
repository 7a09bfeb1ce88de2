// Package checkin is the daily symptom check-in form.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/router"
	"github.com/curanostics/curanostics/internal/screen"
	"github.com/curanostics/curanostics/internal/symptoms"
	"github.com/curanostics/curanostics/internal/ui/components"
	"github.com/curanostics/curanostics/internal/ui/layout"
	"github.com/curanostics/curanostics/internal/ui/theme"
)

// LoggedMsg carries a saved check-in to the app.
type LoggedMsg struct {
	Log patient.SymptomLog
}

type savedMsg struct {
	Log patient.SymptomLog
	Err error
}

// errUnavailable is shown when the app runs without a symptom store.
var errUnavailable = errors.New("symptom logging is unavailable")

const notesLimit = 280

// Focus targets, after the metric sliders.
const (
	focusNotes = iota + 4
	focusSave
)

// Screen collects one check-in: four sliders, free-text notes, Save.
type Screen struct {
	svc   *symptoms.Service
	entry symptoms.Entry
	notes components.TextInput
	focus int

	saving bool
	saved  *patient.SymptomLog
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// New creates a check-in form starting from symptoms.DefaultEntry.
func New(svc *symptoms.Service) *Screen {
	return &Screen{
		svc:   svc,
		entry: symptoms.DefaultEntry(),
		notes: components.NewTextInput("Anything else? (optional)", notesLimit),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Log Symptoms"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Move"}}
	switch {
	case s.focus < focusNotes:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Adjust"})
	case s.focus == focusSave:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// HandlesEscape holds the screen open until a pending save reports back.
func (s *Screen) HandlesEscape() bool { return s.saving }

// Entry returns the values currently on the form.
func (s *Screen) Entry() symptoms.Entry {
	e := s.entry
	e.Notes = strings.TrimSpace(s.notes.Value())
	return e
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.saved = &msg.Log
		log := msg.Log
		return s, tea.Sequence(
			func() tea.Msg { return LoggedMsg{Log: log} },
			router.Back(),
		)
	case tea.KeyMsg:
		if s.saving || s.saved != nil {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "up", "shift+tab":
		return s, s.setFocus(max(0, s.focus-1))
	case "down", "tab":
		return s, s.setFocus(min(focusSave, s.focus+1))
	}

	if s.focus == focusNotes {
		if key == "enter" {
			return s, s.setFocus(focusSave)
		}
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		return s, cmd
	}

	switch key {
	case "k":
		return s, s.setFocus(max(0, s.focus-1))
	case "j":
		return s, s.setFocus(min(focusSave, s.focus+1))
	case "left", "h":
		s.adjust(-1)
	case "right", "l":
		s.adjust(1)
	case "enter":
		if s.focus == focusSave {
			return s, s.save()
		}
		return s, s.setFocus(s.focus + 1)
	}
	return s, nil
}

func (s *Screen) setFocus(f int) tea.Cmd {
	s.focus = f
	if f == focusNotes {
		return s.notes.Focus()
	}
	s.notes.Blur()
	return nil
}

func (s *Screen) adjust(delta int) {
	if s.focus >= len(symptoms.Metrics) {
		return
	}
	m := symptoms.Metrics[s.focus]
	s.entry = s.entry.Set(m, s.entry.Get(m)+delta)
}

func (s *Screen) save() tea.Cmd {
	s.errMsg = ""
	if s.svc == nil {
		s.errMsg = errUnavailable.Error()
		return nil
	}
	s.saving = true
	svc, entry := s.svc, s.Entry()
	return func() tea.Msg {
		log, err := svc.Log(context.Background(), entry)
		return savedMsg{Log: log, Err: err}
	}
}

// metricHint describes the ends of each scale.
var metricHint = map[symptoms.Metric]string{
	symptoms.Fatigue: "0 none · 10 exhausted",
	symptoms.Nausea:  "0 none · 10 severe",
	symptoms.Pain:    "0 none · 10 worst",
	symptoms.Mood:    "0 low · 10 great",
}

func (s *Screen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("How are you feeling today?"))
	b.WriteString("\n\n")

	for i, m := range symptoms.Metrics {
		v := s.entry.Get(m)
		label := fmt.Sprintf("%-8s", m)
		if i == s.focus {
			label = "▸ " + label
		} else {
			label = "  " + label
		}
		bar := components.ProgressBar{
			Label:   label,
			Percent: components.Fraction(v, symptoms.MaxScore),
			Suffix:  fmt.Sprintf("%2d/%d", v, symptoms.MaxScore),
			Width:   cw,
			Fill:    metricColor(m, v),
		}
		b.WriteString(bar.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("    " + metricHint[m]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	notesLabel := "  Notes"
	if s.focus == focusNotes {
		notesLabel = "▸ Notes"
	}
	b.WriteString(theme.Label.Render(notesLabel))
	b.WriteString("\n  ")
	b.WriteString(s.notes.View())
	b.WriteString("\n\n")

	if s.saving {
		b.WriteString(components.Button("Saving...", components.ButtonBusy))
	} else {
		b.WriteString(components.Button("Save Check-in", components.ButtonFor(s.focus == focusSave)))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return layout.Center(b.String(), width, height)
}

// metricColor shades a bar by severity. Mood runs the other way.
func metricColor(m symptoms.Metric, v int) color.Color {
	if m == symptoms.Mood {
		v = symptoms.MaxScore - v
	}
	switch {
	case v >= 7:
		return theme.Error
	case v >= 4:
		return theme.Warning
	default:
		return theme.Secondary
	}
}
