// Package insight offers the AI-generated summaries, trend reports, and
// explanations, rendered as markdown.
package insight

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/curanostics/curanostics/internal/insights"
	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/screen"
	"github.com/curanostics/curanostics/internal/screens"
	"github.com/curanostics/curanostics/internal/ui/components"
	"github.com/curanostics/curanostics/internal/ui/layout"
	"github.com/curanostics/curanostics/internal/ui/theme"
)

// Kind is one insight the user can request.
type Kind int

const (
	KindClinicalSummary Kind = iota
	KindSymptomTrends
	KindLabSummary
	KindVisitQuestions
	KindEngagement
	KindExplainDiagnosis
	KindExplainMedication
)

// Kinds lists the menu in display order.
var Kinds = []Kind{
	KindClinicalSummary,
	KindSymptomTrends,
	KindLabSummary,
	KindVisitQuestions,
	KindEngagement,
	KindExplainDiagnosis,
	KindExplainMedication,
}

func (k Kind) String() string {
	switch k {
	case KindClinicalSummary:
		return "Clinical Summary"
	case KindSymptomTrends:
		return "Symptom Trends"
	case KindLabSummary:
		return "Latest Lab Report"
	case KindVisitQuestions:
		return "Questions for My Next Visit"
	case KindEngagement:
		return "Engagement Report"
	case KindExplainDiagnosis:
		return "Explain My Diagnosis"
	case KindExplainMedication:
		return "Explain My Medication"
	default:
		return "Insight"
	}
}

func (k Kind) description() string {
	switch k {
	case KindClinicalSummary:
		return "for your care team"
	case KindSymptomTrends:
		return "last 7 check-ins"
	case KindLabSummary:
		return "in plain language"
	case KindVisitQuestions:
		return "3 to 5 questions"
	case KindEngagement:
		return "adherence and activity"
	default:
		return ""
	}
}

type state int

const (
	stateMenu state = iota
	stateLoading
	stateResult
)

type generatedMsg struct {
	seq      int
	kind     Kind
	markdown string
}

// Screen is the AI insights hub.
type Screen struct {
	deps  screens.Deps
	menu  components.Menu
	state state

	seq      int // request counter; stale results are dropped
	kind     Kind
	spinner  spinner.Model
	markdown string
	offset   int

	rendered      string
	renderedWidth int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// New creates the insights screen.
func New(deps screens.Deps) *Screen {
	s := &Screen{
		deps:    deps,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(theme.Subtitle)),
	}
	items := make([]components.MenuItem, len(Kinds))
	for i, k := range Kinds {
		items[i] = components.MenuItem{
			Label:       k.String(),
			Description: k.description(),
			Action:      func() tea.Cmd { return s.request(k) },
			Disabled:    deps.Insights == nil,
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "AI Insights"
}

// HandlesEscape reports whether Esc returns to the menu instead of leaving.
func (s *Screen) HandlesEscape() bool {
	return s.state != stateMenu
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.state {
	case stateResult:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Back"},
		}
	case stateLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// Markdown returns the last generated insight.
func (s *Screen) Markdown() string { return s.markdown }

func (s *Screen) request(k Kind) tea.Cmd {
	s.seq++
	s.kind = k
	s.state = stateLoading

	seq, svc, p := s.seq, s.deps.Insights, s.deps.Patient()
	generate := func() tea.Msg {
		return generatedMsg{seq: seq, kind: k, markdown: Generate(context.Background(), svc, k, p)}
	}
	return tea.Batch(generate, s.spinner.Tick)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if msg.seq != s.seq || s.state != stateLoading {
			return s, nil
		}
		s.state = stateResult
		s.markdown = msg.markdown
		s.rendered = ""
		s.offset = 0
		return s, nil

	case spinner.TickMsg:
		if s.state != stateLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch s.state {
		case stateMenu:
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		case stateLoading:
			if msg.String() == "esc" {
				s.seq++
				s.state = stateMenu
			}
		case stateResult:
			switch msg.String() {
			case "esc", "backspace":
				s.state = stateMenu
			case "up", "k":
				s.offset = max(0, s.offset-1)
			case "down", "j":
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	switch s.state {
	case stateLoading:
		msg := s.spinner.View() + theme.Subtitle.Render(fmt.Sprintf(" Generating %s...", strings.ToLower(s.kind.String())))
		return layout.Center(msg, width, height)
	case stateResult:
		return s.resultView(width, height, cw)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("AI Insights"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Generated summaries are informational, not medical advice."))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	if s.deps.Insights == nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).
			Render("No AI provider configured. Run `curanostics llm` for setup help."))
	}
	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func (s *Screen) resultView(width, height, cw int) string {
	if s.rendered == "" || s.renderedWidth != cw {
		s.rendered = renderMarkdown(s.markdown, cw)
		s.renderedWidth = cw
	}

	lines := strings.Split(strings.TrimRight(s.rendered, "\n"), "\n")
	maxOffset := max(0, len(lines)-height)
	s.offset = min(s.offset, maxOffset)
	end := min(len(lines), s.offset+height)

	body := strings.Join(lines[s.offset:end], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// renderMarkdown renders md for the terminal, falling back to the source
// when glamour cannot.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Generate produces the markdown for one insight kind. Provider failures
// surface as the service's fallback text, never as an error.
func Generate(ctx context.Context, svc *insights.Service, k Kind, p patient.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", k)

	switch k {
	case KindClinicalSummary:
		b.WriteString(svc.ClinicalSummary(ctx, p))
	case KindEngagement:
		b.WriteString(svc.EngagementReport(ctx, p))
	case KindSymptomTrends:
		if len(p.Symptoms) == 0 {
			b.WriteString("No symptom check-ins yet. Log how you feel to see trends.")
			break
		}
		b.WriteString(svc.SymptomTrends(ctx, p.Symptoms, p.ActiveMedications()))
	case KindLabSummary:
		if len(p.Labs) == 0 {
			b.WriteString("No lab results on file.")
			break
		}
		lab := p.Labs[len(p.Labs)-1]
		fmt.Fprintf(&b, "_%s, %s_\n\n", lab.TestName, lab.Date)
		b.WriteString(svc.LabSummary(ctx, lab))
	case KindVisitQuestions:
		for i, q := range svc.VisitQuestions(ctx, p) {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
	case KindExplainDiagnosis, KindExplainMedication:
		concept, kind, ok := subject(k, p)
		if !ok {
			b.WriteString("Nothing on your record to explain yet.")
			break
		}
		e := svc.ExplainConcept(ctx, concept, kind, p)
		fmt.Fprintf(&b, "## %s\n\n%s\n\n**Next step:** %s\n", e.Title, e.Explanation, e.ActionItem)
	}
	return b.String()
}

// subject picks the first active diagnosis or medication to explain.
func subject(k Kind, p patient.Profile) (string, insights.ConceptKind, bool) {
	if k == KindExplainMedication {
		meds := p.ActiveMedications()
		if len(meds) == 0 {
			return "", "", false
		}
		return meds[0].Name, insights.KindMedication, true
	}
	for _, d := range p.Diagnoses {
		if d.Status == patient.StatusActive {
			return d.Condition, insights.KindCondition, true
		}
	}
	return "", "", false
}
