package history

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/screening"
)

var (
	keyTab   = tea.KeyPressMsg{Code: tea.KeyTab}
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func profile() patient.Profile {
	p := patient.Demo()
	return p.WithSurvey(screening.SurveyResult{
		ID:             "s-new",
		Type:           screening.InstrumentSDOH,
		Date:           "2024-11-26",
		Score:          2,
		Interpretation: "2 Social Risk(s) Identified",
		Details:        map[string]string{"Total Risks": "2", "Requesting Help": "Yes"},
	})
}

func TestNewestFirst(t *testing.T) {
	s := New(profile())
	if s.surveys[0].ID != "s-new" {
		t.Errorf("first survey = %q, want s-new", s.surveys[0].ID)
	}
	if s.symptoms[0].ID != "log1" {
		t.Errorf("first symptom = %q, want log1", s.symptoms[0].ID)
	}
}

func TestDoesNotAliasProfile(t *testing.T) {
	p := profile()
	New(p)
	if p.Surveys[0].ID != "s1" {
		t.Error("profile surveys were reordered")
	}
}

func TestExpandDetails(t *testing.T) {
	s := New(profile())
	view := ansi.Strip(s.View(100, 30))
	if strings.Contains(view, "Requesting Help") {
		t.Error("details visible before expanding")
	}

	s.Update(keyEnter)
	view = ansi.Strip(s.View(100, 30))
	for _, want := range []string{"SDOH", "2 Social Risk(s) Identified", "Requesting Help: Yes", "Total Risks: 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTabSwitch(t *testing.T) {
	s := New(profile())
	s.Update(keyDown)
	s.Update(keyEnter)

	s.Update(keyTab)
	if s.Tab() != TabSymptoms {
		t.Fatalf("Tab = %v, want Symptoms", s.Tab())
	}
	if s.selected != 0 || len(s.expanded) != 0 {
		t.Error("selection not reset on tab switch")
	}

	s.Update(keyEnter)
	view := ansi.Strip(s.View(100, 30))
	if !strings.Contains(view, "Mild joint stiffness") {
		t.Error("expected notes of the newest log")
	}
}

func TestNavigationBounds(t *testing.T) {
	s := New(profile())
	for range 5 {
		s.Update(keyDown)
	}
	if s.selected != len(s.surveys)-1 {
		t.Errorf("selected = %d, want %d", s.selected, len(s.surveys)-1)
	}
}

func TestEmpty(t *testing.T) {
	s := New(patient.Profile{})
	s.Update(keyEnter)
	if len(s.expanded) != 0 {
		t.Error("expanded an empty list")
	}
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "No screenings yet") {
		t.Error("expected empty-state message")
	}
}
