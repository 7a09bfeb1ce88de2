package screening

import (
	"fmt"
	"slices"
)

// Answer is the tagged view of one captured answer. Only the field that
// matches Modality is meaningful.
type Answer struct {
	Modality Modality
	Choice   string   // SingleChoice
	Selected []string // MultiChoice, in selection order
	Value    int      // OrdinalScale
}

// Answers holds the captured answers of one screener run, keyed by
// question ID. An entry exists only once the user has interacted with the
// question. Answers is owned by a single screener and is not safe for
// concurrent use.
type Answers struct {
	choice map[string]string
	multi  map[string][]string
	scale  map[string]int
}

// NewAnswers creates an empty answer store.
func NewAnswers() *Answers {
	return &Answers{
		choice: make(map[string]string),
		multi:  make(map[string][]string),
		scale:  make(map[string]int),
	}
}

// Record applies a user selection of label to question q:
//   - SingleChoice replaces the previous choice.
//   - MultiChoice toggles label; the null option resets the set to itself
//     and any other label clears a prior null option.
//   - OrdinalScale stores the option's integer value.
func (a *Answers) Record(q Question, label string) error {
	opt, ok := q.Option(label)
	if !ok {
		return fmt.Errorf("%w: %q for %s", ErrInvalidOption, label, q.ID)
	}

	switch q.Modality {
	case SingleChoice:
		a.choice[q.ID] = label
	case MultiChoice:
		a.multi[q.ID] = toggle(a.multi[q.ID], label, q.NullOption)
	case OrdinalScale:
		a.scale[q.ID] = opt.Value
	}
	return nil
}

// SetScale stores an ordinal value directly. The value must be offered by q.
func (a *Answers) SetScale(q Question, value int) error {
	if q.Modality != OrdinalScale {
		return fmt.Errorf("%w: %s is %s", ErrInvalidOption, q.ID, q.Modality)
	}
	for _, o := range q.Options {
		if o.Value == value {
			a.scale[q.ID] = value
			return nil
		}
	}
	return fmt.Errorf("%w: value %d for %s", ErrInvalidOption, value, q.ID)
}

func toggle(current []string, label, nullOption string) []string {
	if nullOption != "" && label == nullOption {
		return []string{nullOption}
	}
	if slices.Contains(current, label) {
		return slices.DeleteFunc(slices.Clone(current), func(s string) bool { return s == label })
	}
	out := make([]string, 0, len(current)+1)
	for _, s := range current {
		if nullOption != "" && s == nullOption {
			continue
		}
		out = append(out, s)
	}
	return append(out, label)
}

// Get returns the answer for id, or false if the question is unanswered.
func (a *Answers) Get(id string) (Answer, bool) {
	if c, ok := a.choice[id]; ok {
		return Answer{Modality: SingleChoice, Choice: c}, true
	}
	if s, ok := a.multi[id]; ok {
		return Answer{Modality: MultiChoice, Selected: slices.Clone(s)}, true
	}
	if v, ok := a.scale[id]; ok {
		return Answer{Modality: OrdinalScale, Value: v}, true
	}
	return Answer{}, false
}

// Has reports whether the question has been answered.
func (a *Answers) Has(id string) bool {
	_, ok := a.Get(id)
	return ok
}

// Choice returns a single-choice answer.
func (a *Answers) Choice(id string) (string, bool) {
	c, ok := a.choice[id]
	return c, ok
}

// Selected returns a copy of a multi-choice answer.
func (a *Answers) Selected(id string) []string {
	return slices.Clone(a.multi[id])
}

// Scale returns an ordinal-scale answer.
func (a *Answers) Scale(id string) (int, bool) {
	v, ok := a.scale[id]
	return v, ok
}

// Len returns the number of answered questions.
func (a *Answers) Len() int {
	return len(a.choice) + len(a.multi) + len(a.scale)
}

// Reset discards every answer.
func (a *Answers) Reset() {
	clear(a.choice)
	clear(a.multi)
	clear(a.scale)
}
