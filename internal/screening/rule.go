package screening

import "slices"

// RiskRule is evaluated against a captured answer at scoring time.
// Implementations: Exact, OneOf, Predicate.
type RiskRule interface {
	Evaluate(a Answer) bool
}

// Exact triggers when a single-choice answer equals the value.
type Exact string

func (e Exact) Evaluate(a Answer) bool {
	return a.Modality == SingleChoice && a.Choice == string(e)
}

// OneOf triggers when a single-choice answer is a member of the set.
type OneOf []string

func (o OneOf) Evaluate(a Answer) bool {
	return a.Modality == SingleChoice && slices.Contains(o, a.Choice)
}

// Predicate triggers when the function returns true.
type Predicate func(a Answer) bool

func (p Predicate) Evaluate(a Answer) bool {
	return p(a)
}

// AnyExcept triggers when a multi-choice selection is non-empty and does not
// contain the null option.
func AnyExcept(nullOption string) Predicate {
	return func(a Answer) bool {
		if a.Modality != MultiChoice {
			return false
		}
		return len(a.Selected) > 0 && !slices.Contains(a.Selected, nullOption)
	}
}
