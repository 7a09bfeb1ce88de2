// Package screener hosts a screening instrument run inside the TUI: it maps
// keys onto the screener's answer and navigation operations, shows the
// result, and reports completion or cancellation to the app.
package screener

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/curanostics/curanostics/internal/router"
	"github.com/curanostics/curanostics/internal/screen"
	"github.com/curanostics/curanostics/internal/screening"
	"github.com/curanostics/curanostics/internal/ui/layout"
)

// row is one selectable line: an option of a question, or the action row
// (question == -1) that advances or completes the step.
type row struct {
	question int
	option   int
}

func (r row) isAction() bool { return r.question < 0 }

// Screen runs one screener from first question to acknowledgement.
type Screen struct {
	run   screening.Screener
	delay time.Duration

	step   screening.Step // step being displayed
	rows   []row
	cursor int
	offset int // first visible line when the step overflows

	// pending is set while a scored GAD-7 answer is highlighted before
	// the next question is shown.
	pending bool

	result    *screening.SurveyResult
	delivered *screening.SurveyResult
	cancelled bool
	errMsg    string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// Option configures a Screen.
type Option func(*Screen, *screening.Hooks)

// WithDelay overrides HighlightDelay. Zero advances immediately.
func WithDelay(d time.Duration) Option {
	return func(s *Screen, _ *screening.Hooks) { s.delay = d }
}

// WithClock overrides the clock used to date results.
func WithClock(now func() time.Time) Option {
	return func(_ *Screen, h *screening.Hooks) { h.Now = now }
}

// New creates a screen running a fresh screener for inst.
func New(inst screening.Instrument, opts ...Option) (*Screen, error) {
	s := &Screen{delay: HighlightDelay}
	hooks := screening.Hooks{
		OnComplete: func(r screening.SurveyResult) { s.delivered = &r },
		OnCancel:   func() { s.cancelled = true },
	}
	for _, opt := range opts {
		opt(s, &hooks)
	}

	run, err := screening.New(inst, hooks)
	if err != nil {
		return nil, err
	}
	s.run = run
	s.setStep(run.Start())
	return s, nil
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return InstrumentTitle(s.run.Instrument())
}

// InstrumentTitle is the display name of an instrument.
func InstrumentTitle(inst screening.Instrument) string {
	switch inst {
	case screening.InstrumentGAD7:
		return "GAD-7 Anxiety"
	case screening.InstrumentSDOH:
		return "Social Needs Screening"
	default:
		return string(inst)
	}
}

// HandlesEscape reports true: Esc cancels the run or acknowledges the
// result instead of popping the screen directly.
func (s *Screen) HandlesEscape() bool { return true }

// Phase exposes the screener's lifecycle phase.
func (s *Screen) Phase() screening.Phase { return s.run.Phase() }

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: s.ackLabel()},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
	}
	if s.run.CanBack() {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Back"})
	}
	if s.run.Instrument() == screening.InstrumentSDOH && !s.step.Final {
		hints = append(hints, layout.KeyHint{Key: "→", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Cancel"})
}

func (s *Screen) ackLabel() string {
	if s.run.Instrument() == screening.InstrumentGAD7 {
		return "Return to Dashboard"
	}
	return "Done"
}

func (s *Screen) actionLabel() string {
	switch {
	case s.step.Final && s.run.Instrument() == screening.InstrumentGAD7:
		return "See Results"
	case s.step.Final:
		return "Complete Screening"
	default:
		return "Next Section →"
	}
}

// setStep displays st and rebuilds the selectable rows.
func (s *Screen) setStep(st screening.Step) {
	s.step = st
	s.rows = s.rows[:0]
	for qi, q := range st.Questions {
		for oi := range q.Options {
			s.rows = append(s.rows, row{question: qi, option: oi})
		}
	}
	if s.hasAction() {
		s.rows = append(s.rows, row{question: -1})
	}
	s.cursor = s.answeredRow()
	s.offset = 0
}

func (s *Screen) hasAction() bool {
	return s.run.Instrument() != screening.InstrumentGAD7 || s.step.Final
}

// answeredRow places the cursor on the current answer of a single-question
// step so revisiting a question shows the previous choice.
func (s *Screen) answeredRow() int {
	if len(s.step.Questions) != 1 {
		return 0
	}
	q := s.step.Questions[0]
	marked := s.marked(q)
	for i, r := range s.rows {
		if !r.isAction() && marked(q.Options[r.option].Label) {
			return i
		}
	}
	return 0
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		if s.pending {
			s.refresh()
		}
		return s, nil
	case tea.KeyMsg:
		if s.result != nil {
			return s.handleResultKey(msg)
		}
		if s.pending {
			// Only Esc gets through while an answer is highlighted.
			if msg.String() != "esc" {
				return s, nil
			}
			s.pending = false
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, s.cancel()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case "left", "h":
		s.back()
	case "right", "l":
		s.next()
	case "enter", "space", " ":
		return s, s.activate()
	}
	return s, nil
}

func (s *Screen) handleResultKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		return s, s.acknowledge()
	}
	return s, nil
}

func (s *Screen) activate() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	r := s.rows[s.cursor]
	if r.isAction() {
		if s.step.Final {
			s.complete()
		} else {
			s.next()
		}
		return nil
	}

	q := s.step.Questions[r.question]
	if err := s.run.Answer(q.ID, q.Options[r.option].Label); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""

	// Scored GAD-7 answers advance the screener immediately; the screen
	// keeps showing the answered question until the delay ends.
	if s.run.Instrument() == screening.InstrumentGAD7 && !s.step.Final {
		if s.delay <= 0 {
			s.refresh()
			return nil
		}
		s.pending = true
		return tea.Tick(s.delay, func(t time.Time) tea.Msg {
			return advanceMsg(t)
		})
	}
	return nil
}

func (s *Screen) refresh() {
	s.pending = false
	s.setStep(s.run.Step())
}

func (s *Screen) next() {
	if err := s.run.Next(); err != nil {
		if errors.Is(err, screening.ErrNoNext) && !s.step.Final {
			s.errMsg = "Choose an answer to continue."
		}
		return
	}
	s.errMsg = ""
	s.setStep(s.run.Step())
}

func (s *Screen) back() {
	if !s.run.CanBack() {
		return
	}
	if err := s.run.Back(); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	s.setStep(s.run.Step())
}

func (s *Screen) complete() {
	r, err := s.run.Complete()
	if err != nil {
		if errors.Is(err, screening.ErrNotReady) {
			s.errMsg = "Please answer this question before finishing."
		} else {
			s.errMsg = err.Error()
		}
		return
	}
	s.errMsg = ""
	s.result = &r
}

func (s *Screen) acknowledge() tea.Cmd {
	if err := s.run.Acknowledge(); err != nil || s.delivered == nil {
		return nil
	}
	r := *s.delivered
	return tea.Sequence(
		func() tea.Msg { return CompletedMsg{Result: r} },
		router.Home(),
	)
}

func (s *Screen) cancel() tea.Cmd {
	if err := s.run.Cancel(); err != nil || !s.cancelled {
		return nil
	}
	inst := s.run.Instrument()
	return tea.Sequence(
		func() tea.Msg { return CancelledMsg{Instrument: inst} },
		router.Back(),
	)
}
