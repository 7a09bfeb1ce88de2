package home

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/curanostics/curanostics/internal/insights"
	"github.com/curanostics/curanostics/internal/llm"
	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/router"
	"github.com/curanostics/curanostics/internal/screening"
	"github.com/curanostics/curanostics/internal/screens"
	"github.com/curanostics/curanostics/internal/screens/checkin"
	"github.com/curanostics/curanostics/internal/screens/history"
	"github.com/curanostics/curanostics/internal/screens/insight"
	"github.com/curanostics/curanostics/internal/screens/screener"
)

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func demoDeps() screens.Deps {
	p := patient.Demo()
	return screens.Deps{Profile: func() patient.Profile { return p }}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		name string
		want string
	}{
		{8, "Sarah", "Good morning, Sarah"},
		{12, "Sarah", "Good afternoon, Sarah"},
		{16, "Sarah", "Good afternoon, Sarah"},
		{20, "Sarah", "Good evening, Sarah"},
		{9, "", "Good morning"},
	}
	for _, tt := range tests {
		if got := greeting(tt.hour, tt.name); got != tt.want {
			t.Errorf("greeting(%d, %q) = %q, want %q", tt.hour, tt.name, got, tt.want)
		}
	}
}

func TestInit_WithoutInsightsUsesFallback(t *testing.T) {
	h := New(demoDeps())
	if cmd := h.Init(); cmd != nil {
		t.Error("expected no load command without an insights service")
	}
	if !h.loaded || h.insight != insights.FallbackDailyInsight {
		t.Errorf("insight = %+v, want fallback", h.insight)
	}
}

func TestInit_LoadsDailyInsight(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(insights.DailyInsight{Title: "Small Steps", Content: "A short walk helps."}))
	svc := insights.NewService(mock, insights.DefaultConfig(), nil)

	deps := demoDeps()
	deps.Insights = svc
	h := New(deps)

	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	if h.loaded {
		t.Error("loaded before the command ran")
	}
	h.Update(cmd())

	if h.insight.Title != "Small Steps" {
		t.Errorf("insight = %+v", h.insight)
	}
	view := ansi.Strip(h.View(100, 50))
	if !strings.Contains(view, "A short walk helps.") {
		t.Error("view missing the daily insight")
	}
}

func TestView_Dashboard(t *testing.T) {
	h := New(demoDeps())
	h.Init()
	h.now = func() time.Time { return time.Date(2024, 11, 26, 9, 0, 0, 0, time.UTC) }

	view := ansi.Strip(h.View(100, 50))
	for _, want := range []string{
		"Good morning, Sarah",
		"Strength & Grace",
		"Invasive Ductal Carcinoma",
		"Tamoxifen 20mg",
		"4/21 Minimal Anxiety",
		"Not taken yet",
		"Last check-in 2024-11-25",
		"Take GAD-7",
		"AI Insights",
		"No AI provider configured",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestView_CompactHidesCards(t *testing.T) {
	h := New(demoDeps())
	view := ansi.Strip(h.View(100, 20))
	if strings.Contains(view, "Care Plan") {
		t.Error("compact view should hide the care plan")
	}
	if !strings.Contains(view, "Screenings") || !strings.Contains(view, "Take SDOH") {
		t.Error("compact view should keep screenings and the menu")
	}
}

func TestFollowUpBadge(t *testing.T) {
	p := patient.Demo().WithSurvey(screening.SurveyResult{
		Type: screening.InstrumentGAD7, Date: "2024-11-26", Score: 12, Interpretation: "Moderate Anxiety",
	})
	line := ansi.Strip(screeningLine(p, screening.InstrumentGAD7))
	if !strings.Contains(line, "12/21 Moderate Anxiety") || !strings.Contains(line, "[follow up]") {
		t.Errorf("line = %q", line)
	}
}

func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.OpenMsg)
	if !ok {
		t.Fatalf("expected OpenMsg, got %T", cmd())
	}
	return msg.Screen
}

func TestMenuNavigation(t *testing.T) {
	h := New(demoDeps())

	_, cmd := h.Update(keyEnter)
	s, ok := pushed(t, cmd).(*screener.Screen)
	if !ok || s.Title() != "GAD-7 Anxiety" {
		t.Errorf("Take GAD-7 pushed %T", s)
	}

	h.Update(keyDown)
	_, cmd = h.Update(keyEnter)
	if s, ok := pushed(t, cmd).(*screener.Screen); !ok || s.Title() != "Social Needs Screening" {
		t.Errorf("Take SDOH pushed %T", s)
	}

	h.Update(keyDown)
	_, cmd = h.Update(keyEnter)
	if _, ok := pushed(t, cmd).(*checkin.Screen); !ok {
		t.Error("Log Symptoms should push the check-in form")
	}

	h.Update(keyDown)
	_, cmd = h.Update(keyEnter)
	if _, ok := pushed(t, cmd).(*history.HistoryScreen); !ok {
		t.Error("Survey History should push the history screen")
	}

	h.Update(keyDown)
	_, cmd = h.Update(keyEnter)
	if _, ok := pushed(t, cmd).(*insight.Screen); !ok {
		t.Error("AI Insights should push the insights screen")
	}
}
