package screening

// Modality is the input type of a question.
type Modality int

const (
	SingleChoice Modality = iota // One label from Options
	MultiChoice                  // A set of labels from Options
	OrdinalScale                 // One labeled integer from Options
)

func (m Modality) String() string {
	switch m {
	case SingleChoice:
		return "single-choice"
	case MultiChoice:
		return "multi-choice"
	case OrdinalScale:
		return "ordinal-scale"
	default:
		return "unknown"
	}
}

// Option is one selectable answer. Value is only meaningful for
// OrdinalScale questions.
type Option struct {
	Label string
	Value int
}

// Question is a single catalog entry. Questions are built at package init
// and never modified.
type Question struct {
	ID       string
	Prompt   string
	Modality Modality
	Options  []Option

	// NullOption is the multi-choice label that excludes every other
	// selection (e.g. "None of the above"). Empty for other modalities.
	NullOption string

	// Rule decides whether an answer counts as a risk. Nil for questions
	// that are not individually risk-flagged.
	Rule RiskRule
}

// Labels returns the option labels in display order.
func (q Question) Labels() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Label
	}
	return out
}

// Option returns the option with the given label.
func (q Question) Option(label string) (Option, bool) {
	for _, o := range q.Options {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}

// Section is a named group of questions. Questions in the safety section
// are scored by summation instead of individual risk rules.
type Section struct {
	Title       string
	Description string
	Safety      bool
	Questions   []Question
}

func choices(labels ...string) []Option {
	out := make([]Option, len(labels))
	for i, l := range labels {
		out[i] = Option{Label: l}
	}
	return out
}
