package screening

import (
	"time"
)

// Phase is the lifecycle state of a screener run.
type Phase int

const (
	PhaseInProgress   Phase = iota // Answering questions
	PhaseReadyToScore              // On the final step
	PhaseScored                    // Result computed, awaiting acknowledgement
	PhaseAcknowledged              // Result handed to the host
	PhaseCancelled                 // Aborted by the user
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseReadyToScore:
		return "ready-to-score"
	case PhaseScored:
		return "scored"
	case PhaseAcknowledged:
		return "acknowledged"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Hooks connects a screener to its host.
type Hooks struct {
	// OnComplete receives the result exactly once, on acknowledgement.
	OnComplete func(SurveyResult)

	// OnCancel is called at most once if the user aborts before scoring.
	OnCancel func()

	// Now overrides the clock used to date results. Defaults to time.Now.
	Now func() time.Time
}

// Step describes the current position for rendering.
type Step struct {
	Index       int
	Count       int
	Title       string
	Description string
	Questions   []Question
	Final       bool
}

// Screener is the host-facing contract shared by every instrument.
type Screener interface {
	Instrument() Instrument
	Start() Step
	Step() Step
	Phase() Phase
	Answers() *Answers
	Answer(questionID, label string) error
	Next() error
	Back() error
	CanBack() bool
	Complete() (SurveyResult, error)
	Result() (SurveyResult, bool)
	Acknowledge() error
	Cancel() error
}

// lifecycle holds the state shared by every instrument: the answer store,
// the phase machine and the host callbacks.
type lifecycle struct {
	hooks   Hooks
	answers *Answers
	phase   Phase
	result  *SurveyResult
}

func newLifecycle(h Hooks) lifecycle {
	if h.Now == nil {
		h.Now = time.Now
	}
	return lifecycle{hooks: h, answers: NewAnswers()}
}

func (l *lifecycle) Phase() Phase { return l.phase }

func (l *lifecycle) Answers() *Answers { return l.answers }

// mutable returns nil if answers and navigation may still change.
func (l *lifecycle) mutable() error {
	switch l.phase {
	case PhaseScored:
		return ErrCompleted
	case PhaseAcknowledged, PhaseCancelled:
		return ErrClosed
	}
	return nil
}

func (l *lifecycle) score(inst Instrument, s Score) SurveyResult {
	r := newResult(inst, s, l.hooks.Now())
	l.result = &r
	l.phase = PhaseScored
	return r.Clone()
}

func (l *lifecycle) Result() (SurveyResult, bool) {
	if l.result == nil {
		return SurveyResult{}, false
	}
	return l.result.Clone(), true
}

// Acknowledge hands the result to the host. It is the only transition out
// of PhaseScored.
func (l *lifecycle) Acknowledge() error {
	switch l.phase {
	case PhaseScored:
	case PhaseAcknowledged, PhaseCancelled:
		return ErrClosed
	default:
		return ErrNotScored
	}
	l.phase = PhaseAcknowledged
	if l.hooks.OnComplete != nil {
		l.hooks.OnComplete(l.result.Clone())
	}
	return nil
}

// Cancel discards partial answers and notifies the host.
func (l *lifecycle) Cancel() error {
	if err := l.mutable(); err != nil {
		return err
	}
	l.phase = PhaseCancelled
	l.answers.Reset()
	if l.hooks.OnCancel != nil {
		l.hooks.OnCancel()
	}
	return nil
}
