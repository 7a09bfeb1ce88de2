// Package screening implements the self-administered screening instruments
// (GAD-7 anxiety and SDOH social needs): the question catalogs, the answer
// store, step navigation, and the scoring rules that produce a SurveyResult.
//
// A screener moves through
//
//	InProgress → ReadyToScore → Scored → Acknowledged
//
// and may be cancelled before it is scored. Scoring happens once; after it
// every mutation returns ErrCompleted.
package screening

import "fmt"

// New creates a screener for the given instrument.
func New(inst Instrument, h Hooks) (Screener, error) {
	switch inst {
	case InstrumentGAD7:
		return NewGAD7(h), nil
	case InstrumentSDOH:
		return NewSDOH(h), nil
	default:
		return nil, fmt.Errorf("unsupported instrument: %q", inst)
	}
}

// Progress returns the fraction of steps completed, in [0, 1).
func Progress(s Step) float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Index) / float64(s.Count)
}

// StepLabel is the short position label shown in a screener header.
func StepLabel(inst Instrument, s Step) string {
	if inst == InstrumentGAD7 {
		if s.Final {
			return "Final"
		}
		return fmt.Sprintf("%d/%d", s.Index+1, s.Count-1)
	}
	return fmt.Sprintf("Step %d of %d", s.Index+1, s.Count)
}
