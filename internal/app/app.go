// Package app is the root Bubble Tea model: it owns the patient record,
// routes between screens, and persists what they produce.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/curanostics/curanostics/internal/insights"
	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/router"
	"github.com/curanostics/curanostics/internal/screen"
	"github.com/curanostics/curanostics/internal/screens"
	"github.com/curanostics/curanostics/internal/screens/checkin"
	"github.com/curanostics/curanostics/internal/screens/home"
	"github.com/curanostics/curanostics/internal/screens/screener"
	"github.com/curanostics/curanostics/internal/surveys"
	"github.com/curanostics/curanostics/internal/symptoms"
	"github.com/curanostics/curanostics/internal/ui/layout"
)

// Options configures the TUI. Nil services disable persistence or AI
// features; the app still runs against the in-memory record.
type Options struct {
	Profile  patient.Profile
	Surveys  *surveys.Service
	Symptoms *symptoms.Service
	Insights *insights.Service
	Logger   *zap.Logger
}

// surveySavedMsg reports the outcome of persisting a survey result.
type surveySavedMsg struct {
	ID  string
	Err error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	profile *patient.Profile
	surveys *surveys.Service
	logger  *zap.Logger
	width   int
	height  int
}

// newAppModel creates a new AppModel with the dashboard as root.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	profile := opts.Profile

	m := AppModel{
		profile: &profile,
		surveys: opts.Surveys,
		logger:  logger.Named("app"),
	}
	deps := screens.Deps{
		Profile:  m.Profile,
		Symptoms: opts.Symptoms,
		Insights: opts.Insights,
	}
	m.router = router.New(home.New(deps))
	return m
}

// Profile returns the current patient record.
func (m AppModel) Profile() patient.Profile {
	return *m.profile
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}

	case screener.CompletedMsg:
		return m, m.recordSurvey(msg)

	case screener.CancelledMsg:
		m.logger.Info("screener cancelled", zap.String("instrument", string(msg.Instrument)))
		return m, nil

	case surveySavedMsg:
		if msg.Err != nil {
			m.logger.Error("persist survey", zap.String("id", msg.ID), zap.Error(msg.Err))
		}
		return m, nil

	case checkin.LoggedMsg:
		*m.profile = m.profile.WithSymptom(msg.Log)
		m.logger.Info("symptom check-in recorded", zap.String("id", msg.Log.ID))
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// recordSurvey appends an acknowledged result to the record and persists
// it in the background.
func (m AppModel) recordSurvey(msg screener.CompletedMsg) tea.Cmd {
	r := msg.Result
	*m.profile = m.profile.WithSurvey(r)
	m.logger.Info("screener completed",
		zap.String("instrument", string(r.Type)),
		zap.String("id", r.ID),
		zap.Int("score", r.Score),
	)

	svc := m.surveys
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		return surveySavedMsg{ID: r.ID, Err: svc.Save(context.Background(), r)}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame, or nothing before the first resize.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(strings.Join(m.router.Trail(), " › "), m.profile.Name, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
