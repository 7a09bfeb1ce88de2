package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/curanostics/curanostics/internal/insights"
	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/screening"
	"github.com/curanostics/curanostics/internal/symptoms"
	"github.com/curanostics/curanostics/internal/ui/components"
	"github.com/curanostics/curanostics/internal/ui/theme"
)

// trendWindow is how many check-ins the symptom card averages.
const trendWindow = 7

// greeting picks a salutation for the hour of day.
func greeting(hour int, name string) string {
	part := "evening"
	switch {
	case hour < 12:
		part = "morning"
	case hour < 17:
		part = "afternoon"
	}
	if name == "" {
		return "Good " + part
	}
	return fmt.Sprintf("Good %s, %s", part, name)
}

func renderGreeting(text string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Render(theme.Title.Render(text))
}

// renderInsightCard shows the daily note, or a placeholder while it loads.
func renderInsightCard(in insights.DailyInsight, loaded bool, cw int) string {
	body := theme.Hint.Render("Loading today's insight...")
	if loaded {
		body = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(in.Title) +
			"\n" + theme.Body.Render(in.Content)
	}
	return components.Card("Daily Insight", body, cw)
}

// renderCarePlan lists the active diagnosis and medications.
func renderCarePlan(p patient.Profile, cw int) string {
	var lines []string
	for _, d := range p.Diagnoses {
		if d.Status != patient.StatusActive {
			continue
		}
		line := d.Condition
		if d.Stage != "" {
			line += " · " + d.Stage
		}
		if len(d.Subtypes) > 0 {
			line += " (" + strings.Join(d.Subtypes, ", ") + ")"
		}
		lines = append(lines, theme.Body.Render(line))
	}
	for _, m := range p.ActiveMedications() {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("%s %s, %s", m.Name, m.Dosage, strings.ToLower(m.Frequency))))
	}
	if len(lines) == 0 {
		lines = append(lines, theme.Hint.Render("No active treatment on file"))
	}
	return components.Card("Care Plan", strings.Join(lines, "\n"), cw)
}

// renderScreenings shows the latest result of each instrument.
func renderScreenings(p patient.Profile, cw int) string {
	var lines []string
	for _, inst := range []screening.Instrument{screening.InstrumentGAD7, screening.InstrumentSDOH} {
		lines = append(lines, screeningLine(p, inst))
	}
	return components.Card("Screenings", strings.Join(lines, "\n"), cw)
}

func screeningLine(p patient.Profile, inst screening.Instrument) string {
	label := fmt.Sprintf("%-6s", inst)
	r, ok := p.LatestSurvey(inst)
	if !ok {
		return label + "  " + theme.Hint.Render("Not taken yet")
	}

	text := fmt.Sprintf("%s  %s", label, r.Interpretation)
	if inst == screening.InstrumentGAD7 {
		text = fmt.Sprintf("%s  %d/%d %s", label, r.Score, screening.GAD7MaxScore, r.Interpretation)
	}
	line := theme.Body.Render(text) + "  " + theme.Hint.Render(r.Date)
	if needsFollowUp(r) {
		line += "  " + components.Badge("follow up", theme.Risk)
	}
	return line
}

// needsFollowUp flags moderate or worse anxiety and any social risk.
func needsFollowUp(r screening.SurveyResult) bool {
	switch r.Type {
	case screening.InstrumentGAD7:
		return r.Score > 9
	case screening.InstrumentSDOH:
		return r.Score > 0
	default:
		return false
	}
}

// renderSymptoms shows the latest check-in and recent averages as bars.
func renderSymptoms(p patient.Profile, cw int) string {
	last, ok := p.LatestSymptom()
	if !ok {
		return components.Card("Symptoms", theme.Hint.Render("No check-ins yet. Log how you feel today."), cw)
	}

	avg := symptoms.Trend(p.Symptoms, trendWindow)
	entry := symptoms.Entry{Fatigue: last.Fatigue, Nausea: last.Nausea, Pain: last.Pain, Mood: last.Mood}

	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Last check-in %s · %d-day average in brackets", last.Date, avg.Count)))
	for _, m := range symptoms.Metrics {
		v := entry.Get(m)
		bar := components.ProgressBar{
			Label:   fmt.Sprintf("%-7s", m),
			Percent: components.Fraction(v, symptoms.MaxScore),
			Suffix:  fmt.Sprintf("%2d (%.1f)", v, avg.Get(m)),
			Width:   cw - 8,
			Fill:    theme.Primary,
		}
		b.WriteString("\n")
		b.WriteString(bar.View())
	}
	return components.Card("Symptoms", b.String(), cw)
}

// renderMenu frames the action menu.
func renderMenu(m components.Menu, cw int) string {
	return components.Card("What would you like to do?", strings.TrimRight(m.View(), "\n"), cw)
}

// renderLLMBanner warns that AI features will use canned text.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Warning).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ No AI provider configured; insights are unavailable (see curanostics llm)")
}
