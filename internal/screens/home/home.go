// Package home is the patient dashboard and main menu.
package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/insights"
	"github.com/curanostics/curanostics/internal/router"
	"github.com/curanostics/curanostics/internal/screen"
	"github.com/curanostics/curanostics/internal/screening"
	"github.com/curanostics/curanostics/internal/screens"
	"github.com/curanostics/curanostics/internal/screens/checkin"
	"github.com/curanostics/curanostics/internal/screens/history"
	"github.com/curanostics/curanostics/internal/screens/insight"
	"github.com/curanostics/curanostics/internal/screens/screener"
	"github.com/curanostics/curanostics/internal/ui/components"
	"github.com/curanostics/curanostics/internal/ui/layout"
)

type insightLoadedMsg struct {
	Insight insights.DailyInsight
}

const (
	// sideBySideWidth is the terminal width at which the care plan and
	// screening cards share a row.
	sideBySideWidth = 110

	// fullHeight is the content height needed for every card.
	fullHeight = 38
)

// HomeScreen is the dashboard shown at the root of the router.
type HomeScreen struct {
	deps    screens.Deps
	menu    components.Menu
	now     func() time.Time
	insight insights.DailyInsight
	loaded  bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the dashboard.
func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, now: time.Now}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Take GAD-7", Description: "anxiety check, 2 minutes", Action: h.startScreener(screening.InstrumentGAD7)},
		{Label: "Take SDOH", Description: "social needs screening", Action: h.startScreener(screening.InstrumentSDOH)},
		{Label: "Log Symptoms", Description: "daily check-in", Action: func() tea.Cmd {
			return router.Open(checkin.New(deps.Symptoms))
		}},
		{Label: "Survey History", Description: "past screenings and check-ins", Action: func() tea.Cmd {
			return router.Open(history.New(deps.Patient()))
		}},
		{Label: "AI Insights", Description: "summaries and explanations", Action: func() tea.Cmd {
			return router.Open(insight.New(deps))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func (h *HomeScreen) startScreener(inst screening.Instrument) func() tea.Cmd {
	return func() tea.Cmd {
		s, err := screener.New(inst)
		if err != nil {
			return nil
		}
		return router.Open(s)
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	svc := h.deps.Insights
	if svc == nil {
		h.insight = insights.FallbackDailyInsight
		h.loaded = true
		return nil
	}
	return func() tea.Msg {
		return insightLoadedMsg{Insight: svc.DailyInsight(context.Background())}
	}
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(insightLoadedMsg); ok {
		h.insight = msg.Insight
		h.loaded = true
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	p := h.deps.Patient()
	compact := height < fullHeight
	cw := layout.ContentWidth(width)
	if width >= sideBySideWidth {
		cw = min(width-6, 2*layout.MaxContentWidth)
	}

	sections := []string{renderGreeting(greeting(h.now().Hour(), p.FirstName()), cw)}

	if !compact {
		sections = append(sections, renderInsightCard(h.insight, h.loaded, cw))
		if width >= sideBySideWidth {
			half := cw / 2
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
				renderCarePlan(p, half), renderScreenings(p, cw-half)))
		} else {
			sections = append(sections, renderCarePlan(p, cw), renderScreenings(p, cw))
		}
		sections = append(sections, renderSymptoms(p, cw))
	} else {
		sections = append(sections, renderScreenings(p, cw))
	}

	sections = append(sections, renderMenu(h.menu, cw))
	if h.deps.Insights == nil {
		sections = append(sections, renderLLMBanner(cw))
	}

	return layout.Center(strings.Join(sections, "\n"), width, height)
}
