package screening

import (
	"fmt"
	"slices"
)

// GAD7DifficultyID is the ID of the unscored functional-impairment question.
const GAD7DifficultyID = "gad7-difficulty"

const gad7Stem = "Over the last 2 weeks, how often have you been bothered by:"

var gad7Frequency = []Option{
	{Label: "Not at all", Value: 0},
	{Label: "Several days", Value: 1},
	{Label: "More than half the days", Value: 2},
	{Label: "Nearly every day", Value: 3},
}

// GAD7Questions are the seven scored symptom-frequency questions.
var GAD7Questions = func() []Question {
	prompts := []string{
		"Feeling nervous, anxious, or on edge",
		"Not being able to stop or control worrying",
		"Worrying too much about different things",
		"Trouble relaxing",
		"Being so restless that it is hard to sit still",
		"Becoming easily annoyed or irritable",
		"Feeling afraid, as if something awful might happen",
	}
	out := make([]Question, len(prompts))
	for i, p := range prompts {
		out[i] = Question{
			ID:       fmt.Sprintf("gad7-%d", i+1),
			Prompt:   p,
			Modality: OrdinalScale,
			Options:  gad7Frequency,
		}
	}
	return out
}()

// GAD7Difficulty is recorded as a detail only.
var GAD7Difficulty = Question{
	ID:       GAD7DifficultyID,
	Prompt:   "If you checked any problems, how difficult have they made it for you to do your work, take care of things at home, or get along with other people?",
	Modality: SingleChoice,
	Options: choices(
		"Not difficult at all",
		"Somewhat difficult",
		"Very difficult",
		"Extremely difficult",
	),
}

// GAD7MaxScore is the highest possible total.
const GAD7MaxScore = 21

// AnxietySeverity maps a GAD-7 total to its interpretation.
func AnxietySeverity(score int) string {
	switch {
	case score <= 4:
		return "Minimal Anxiety"
	case score <= 9:
		return "Mild Anxiety"
	case score <= 14:
		return "Moderate Anxiety"
	default:
		return "Severe Anxiety"
	}
}

// ScoreGAD7 sums the scored answers and records the impairment answer.
// Unanswered questions contribute 0.
func ScoreGAD7(a *Answers) Score {
	total := 0
	for _, q := range GAD7Questions {
		if v, ok := a.Scale(q.ID); ok {
			total += v
		}
	}
	severity := AnxietySeverity(total)

	difficulty, ok := a.Choice(GAD7DifficultyID)
	if !ok || difficulty == "" {
		difficulty = "Not answered"
	}

	return Score{
		Value:          total,
		Interpretation: severity,
		Details: map[string]string{
			"Functional Difficulty": difficulty,
			"Severity Level":        severity,
		},
	}
}

// GAD7 runs the anxiety screener: one question per step, seven scored
// steps followed by the impairment step.
type GAD7 struct {
	lifecycle
	position int
}

var _ Screener = (*GAD7)(nil)

// NewGAD7 creates an anxiety screener.
func NewGAD7(h Hooks) *GAD7 {
	return &GAD7{lifecycle: newLifecycle(h)}
}

func (g *GAD7) Instrument() Instrument { return InstrumentGAD7 }

// Start returns the first step.
func (g *GAD7) Start() Step {
	return g.Step()
}

func (g *GAD7) final() bool { return g.position == len(GAD7Questions) }

// Step returns the current question.
func (g *GAD7) Step() Step {
	count := len(GAD7Questions) + 1
	if g.final() {
		return Step{
			Index:     g.position,
			Count:     count,
			Title:     "One last thing...",
			Questions: []Question{GAD7Difficulty},
			Final:     true,
		}
	}
	return Step{
		Index:     g.position,
		Count:     count,
		Title:     gad7Stem,
		Questions: []Question{GAD7Questions[g.position]},
	}
}

// Position returns the zero-based step index.
func (g *GAD7) Position() int { return g.position }

// Answer records a selection on the current step. A scored answer advances
// to the next step.
func (g *GAD7) Answer(questionID, label string) error {
	if err := g.mutable(); err != nil {
		return err
	}
	step := g.Step()
	i := slices.IndexFunc(step.Questions, func(q Question) bool { return q.ID == questionID })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if err := g.answers.Record(step.Questions[i], label); err != nil {
		return err
	}
	if !g.final() {
		g.advance()
	}
	return nil
}

func (g *GAD7) advance() {
	g.position++
	if g.final() {
		g.phase = PhaseReadyToScore
	}
}

// Next advances past an already answered scored question.
func (g *GAD7) Next() error {
	if err := g.mutable(); err != nil {
		return err
	}
	if g.final() || !g.answers.Has(GAD7Questions[g.position].ID) {
		return ErrNoNext
	}
	g.advance()
	return nil
}

// CanBack reports whether Back is permitted. Only the scored questions
// after the first allow it.
func (g *GAD7) CanBack() bool {
	return g.mutable() == nil && g.position > 0 && !g.final()
}

// Back returns to the previous scored question.
func (g *GAD7) Back() error {
	if err := g.mutable(); err != nil {
		return err
	}
	if !g.CanBack() {
		return ErrNoBack
	}
	g.position--
	return nil
}

// Complete scores the run. It requires the impairment answer.
func (g *GAD7) Complete() (SurveyResult, error) {
	if err := g.mutable(); err != nil {
		return SurveyResult{}, err
	}
	if g.phase != PhaseReadyToScore || !g.answers.Has(GAD7DifficultyID) {
		return SurveyResult{}, ErrNotReady
	}
	return g.score(InstrumentGAD7, ScoreGAD7(g.answers)), nil
}
