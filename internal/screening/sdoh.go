package screening

import (
	"fmt"
	"slices"
	"strconv"
)

// HazardNone is the null option of the housing-hazards question.
const HazardNone = "None of the above"

// SafetyThreshold is the safety sum above which safety risk is flagged.
const SafetyThreshold = 10

var safetyScale = []Option{
	{Label: "Never", Value: 1},
	{Label: "Rarely", Value: 2},
	{Label: "Sometimes", Value: 3},
	{Label: "Fairly often", Value: 4},
	{Label: "Frequently", Value: 5},
}

func safetyQuestion(id, prompt string) Question {
	return Question{ID: id, Prompt: prompt, Modality: OrdinalScale, Options: safetyScale}
}

// SDOHSections is the social-needs catalog in presentation order.
var SDOHSections = []Section{
	{
		Title: "Housing & Utilities",
		Questions: []Question{
			{
				ID:       "q1",
				Prompt:   "Are you worried or concerned that in the next two months you may not have stable housing that you own, rent, or stay in as a part of a household?",
				Modality: SingleChoice,
				Options:  choices("Yes", "No"),
				Rule:     Exact("Yes"),
			},
			{
				ID:       "q2",
				Prompt:   "Think about the place you live. Do you have problems with any of the following? (check all that apply)",
				Modality: MultiChoice,
				Options: choices(
					"Bug infestation",
					"Mold",
					"Lead paint or pipes",
					"Inadequate heat",
					"Oven or stove not working",
					"No or not working smoke detectors",
					"Water leaks",
					HazardNone,
				),
				NullOption: HazardNone,
				Rule:       AnyExcept(HazardNone),
			},
			{
				ID:       "q6",
				Prompt:   "In the past 12 months has the electric, gas, oil, or water company threatened to shut off services in your home?",
				Modality: SingleChoice,
				Options:  choices("Yes", "No", "Already shut off"),
				Rule:     OneOf{"Yes", "Already shut off"},
			},
		},
	},
	{
		Title: "Food & Transportation",
		Questions: []Question{
			{
				ID:       "q3",
				Prompt:   "Within the past 12 months, you worried that your food would run out before you got money to buy more.",
				Modality: SingleChoice,
				Options:  choices("Often true", "Sometimes true", "Never true"),
				Rule:     OneOf{"Often true", "Sometimes true"},
			},
			{
				ID:       "q4",
				Prompt:   "Within the past 12 months, the food you bought just didn't last and you didn't have money to get more.",
				Modality: SingleChoice,
				Options:  choices("Often true", "Sometimes true", "Never true"),
				Rule:     OneOf{"Often true", "Sometimes true"},
			},
			{
				ID:       "q5",
				Prompt:   "Do you put off or neglect going to the doctor because of distance or transportation?",
				Modality: SingleChoice,
				Options:  choices("Yes", "No"),
				Rule:     Exact("Yes"),
			},
		},
	},
	{
		Title: "Socioeconomic",
		Questions: []Question{
			{
				ID:       "q7",
				Prompt:   "Do problems getting child care make it difficult for you to work or study?",
				Modality: SingleChoice,
				Options:  choices("Yes", "No", "N/A"),
				Rule:     Exact("Yes"),
			},
			{
				ID:       "q8",
				Prompt:   "Do you have a job?",
				Modality: SingleChoice,
				Options:  choices("Yes", "No"),
				Rule:     Exact("No"),
			},
			{
				ID:       "q9",
				Prompt:   "Do you have a high school degree?",
				Modality: SingleChoice,
				Options:  choices("Yes", "No"),
				Rule:     Exact("No"),
			},
			{
				ID:       "q10",
				Prompt:   "How often does this describe you? I don't have enough money to pay my bills:",
				Modality: SingleChoice,
				Options:  choices("Never", "Rarely", "Sometimes", "Often", "Always"),
				Rule:     OneOf{"Sometimes", "Often", "Always"},
			},
		},
	},
	{
		Title:       "Personal Safety",
		Description: "How often does anyone, including family...",
		Safety:      true,
		Questions: []Question{
			safetyQuestion("q11", "...physically hurt you?"),
			safetyQuestion("q12", "...insult or talk down to you?"),
			safetyQuestion("q13", "...threaten you with harm?"),
			safetyQuestion("q14", "...scream or curse at you?"),
		},
	},
	{
		Title: "Assistance",
		Questions: []Question{
			{
				ID:       "q15",
				Prompt:   "Would you like help with any of these needs?",
				Modality: SingleChoice,
				Options:  choices("Yes", "No"),
				Rule:     Exact("Yes"),
			},
		},
	},
}

// SDOHHelpQuestionID is the final assistance question.
const SDOHHelpQuestionID = "q15"

// SDOHScore is the detailed outcome of ScoreSDOH.
type SDOHScore struct {
	Score
	RiskQuestions []string
	SafetyScore   int
	SafetyRisk    bool
}

// ScoreSDOH evaluates every non-safety question's rule, sums the safety
// section, and combines them. Unanswered questions never count as risks and
// add 0 to the safety sum.
func ScoreSDOH(a *Answers) SDOHScore {
	var risks []string
	safety := 0

	for _, sec := range SDOHSections {
		for _, q := range sec.Questions {
			if sec.Safety {
				if v, ok := a.Scale(q.ID); ok {
					safety += v
				}
				continue
			}
			if q.Rule == nil {
				continue
			}
			if ans, ok := a.Get(q.ID); ok && q.Rule.Evaluate(ans) {
				risks = append(risks, q.ID)
			}
		}
	}

	safetyRisk := safety > SafetyThreshold
	total := len(risks)
	if safetyRisk {
		total++
	}

	interp := "No significant risks identified"
	if total > 0 {
		interp = fmt.Sprintf("%d Social Risk(s) Identified", total)
	}
	if safetyRisk {
		interp += " (High Safety Risk)"
	}

	safetyLabel := "No"
	if safetyRisk {
		safetyLabel = fmt.Sprintf("Yes (>%d)", SafetyThreshold)
	}
	help, ok := a.Choice(SDOHHelpQuestionID)
	if !ok || help == "" {
		help = "No"
	}

	return SDOHScore{
		Score: Score{
			Value:          total,
			Interpretation: interp,
			Details: map[string]string{
				"Safety Score":    strconv.Itoa(safety),
				"Safety Risk":     safetyLabel,
				"Requesting Help": help,
				"Total Risks":     strconv.Itoa(total),
			},
		},
		RiskQuestions: risks,
		SafetyScore:   safety,
		SafetyRisk:    safetyRisk,
	}
}

// SDOH runs the social-needs screener one section per step.
type SDOH struct {
	lifecycle
	position int
}

var _ Screener = (*SDOH)(nil)

// NewSDOH creates a social-needs screener.
func NewSDOH(h Hooks) *SDOH {
	return &SDOH{lifecycle: newLifecycle(h)}
}

func (s *SDOH) Instrument() Instrument { return InstrumentSDOH }

// Start returns the first section.
func (s *SDOH) Start() Step {
	return s.Step()
}

func (s *SDOH) final() bool { return s.position == len(SDOHSections)-1 }

// Step returns the current section.
func (s *SDOH) Step() Step {
	sec := SDOHSections[s.position]
	return Step{
		Index:       s.position,
		Count:       len(SDOHSections),
		Title:       sec.Title,
		Description: sec.Description,
		Questions:   sec.Questions,
		Final:       s.final(),
	}
}

// Position returns the zero-based section index.
func (s *SDOH) Position() int { return s.position }

// Answer records a selection for a question in the current section.
func (s *SDOH) Answer(questionID, label string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	qs := SDOHSections[s.position].Questions
	i := slices.IndexFunc(qs, func(q Question) bool { return q.ID == questionID })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	return s.answers.Record(qs[i], label)
}

// Next moves to the following section.
func (s *SDOH) Next() error {
	if err := s.mutable(); err != nil {
		return err
	}
	if s.final() {
		return ErrNoNext
	}
	s.position++
	if s.final() {
		s.phase = PhaseReadyToScore
	}
	return nil
}

// CanBack reports whether a previous section exists.
func (s *SDOH) CanBack() bool {
	return s.mutable() == nil && s.position > 0
}

// Back returns to the previous section.
func (s *SDOH) Back() error {
	if err := s.mutable(); err != nil {
		return err
	}
	if s.position == 0 {
		return ErrNoBack
	}
	s.position--
	s.phase = PhaseInProgress
	return nil
}

// Complete scores the run from the last section.
func (s *SDOH) Complete() (SurveyResult, error) {
	if err := s.mutable(); err != nil {
		return SurveyResult{}, err
	}
	if s.phase != PhaseReadyToScore {
		return SurveyResult{}, ErrNotReady
	}
	return s.score(InstrumentSDOH, ScoreSDOH(s.answers).Score), nil
}
