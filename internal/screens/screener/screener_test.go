package screener

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/curanostics/curanostics/internal/screening"
)

var fixedNow = func() time.Time { return time.Date(2024, 11, 26, 15, 4, 5, 0, time.UTC) }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

var (
	keyDown  = specialKey(tea.KeyDown)
	keyUp    = specialKey(tea.KeyUp)
	keyLeft  = specialKey(tea.KeyLeft)
	keyRight = specialKey(tea.KeyRight)
	keyEnter = specialKey(tea.KeyEnter)
	keyEsc   = specialKey(tea.KeyEscape)
)

func plain(s string) string { return ansi.Strip(s) }

func press(s *Screen, keys ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(k)
	}
	return cmd
}

// choose moves the cursor from wherever it is to row and selects it.
func choose(s *Screen, row int) tea.Cmd {
	for s.cursor > row {
		press(s, keyUp)
	}
	for s.cursor < row {
		press(s, keyDown)
	}
	return press(s, keyEnter)
}

func newGAD7(t *testing.T, opts ...Option) *Screen {
	t.Helper()
	s, err := New(screening.InstrumentGAD7, append([]Option{WithClock(fixedNow)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func newSDOH(t *testing.T) *Screen {
	t.Helper()
	s, err := New(screening.InstrumentSDOH, WithClock(fixedNow))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_UnknownInstrument(t *testing.T) {
	if _, err := New(screening.InstrumentPHQ9); err == nil {
		t.Error("expected error for unsupported instrument")
	}
}

func TestScreen_Title(t *testing.T) {
	if got := newGAD7(t).Title(); got != "GAD-7 Anxiety" {
		t.Errorf("Title = %q, want %q", got, "GAD-7 Anxiety")
	}
	if got := newSDOH(t).Title(); got != "Social Needs Screening" {
		t.Errorf("Title = %q, want %q", got, "Social Needs Screening")
	}
}

func TestGAD7_FullRun(t *testing.T) {
	s := newGAD7(t, WithDelay(0))

	for i, v := range []int{0, 1, 2, 3, 1, 0, 2} {
		if s.step.Index != i {
			t.Fatalf("step = %d, want %d", s.step.Index, i)
		}
		if cmd := choose(s, v); cmd != nil {
			t.Errorf("question %d: expected no delay command", i)
		}
	}

	if !s.step.Final {
		t.Fatal("expected the difficulty step")
	}
	if s.Phase() != screening.PhaseReadyToScore {
		t.Errorf("Phase = %v, want ready-to-score", s.Phase())
	}

	// Action row is last; completing before answering is refused.
	choose(s, len(s.rows)-1)
	if s.result != nil {
		t.Fatal("completed without the difficulty answer")
	}
	if s.errMsg == "" {
		t.Error("expected a prompt to answer the difficulty question")
	}

	choose(s, 1) // Somewhat difficult
	choose(s, len(s.rows)-1)
	if s.result == nil {
		t.Fatal("expected a result")
	}
	if s.result.Score != 9 || s.result.Interpretation != "Mild Anxiety" {
		t.Errorf("result = %d %q, want 9 Mild Anxiety", s.result.Score, s.result.Interpretation)
	}
	if s.result.Details["Functional Difficulty"] != "Somewhat difficult" {
		t.Errorf("details = %v", s.result.Details)
	}
	if s.result.Date != "2024-11-26" {
		t.Errorf("Date = %q", s.result.Date)
	}

	view := plain(s.View(100, 30))
	for _, want := range []string{"Screening Complete", "9/21", "Mild Anxiety", "Return to Dashboard"} {
		if !strings.Contains(view, want) {
			t.Errorf("result view missing %q", want)
		}
	}

	if s.delivered != nil {
		t.Fatal("result delivered before acknowledgement")
	}
	cmd := press(s, keyEnter)
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	if s.delivered == nil || s.delivered.Score != 9 {
		t.Fatalf("delivered = %+v", s.delivered)
	}
	if s.Phase() != screening.PhaseAcknowledged {
		t.Errorf("Phase = %v, want acknowledged", s.Phase())
	}

	// A second acknowledgement does nothing.
	if cmd := press(s, keyEnter); cmd != nil {
		t.Error("expected no command after acknowledgement")
	}
}

func TestGAD7_HighlightDelay(t *testing.T) {
	s := newGAD7(t)

	cmd := choose(s, 2)
	if cmd == nil {
		t.Fatal("expected a tick command for the highlight delay")
	}
	if !s.pending {
		t.Fatal("expected pending highlight")
	}
	if s.step.Index != 0 {
		t.Errorf("displayed step = %d, want 0 during highlight", s.step.Index)
	}
	if !strings.Contains(plain(s.View(100, 30)), "(•) More than half the days") {
		t.Error("expected the chosen option to be highlighted")
	}

	// Keys are ignored until the delay ends.
	press(s, keyDown, keyEnter)
	if s.run.Answers().Len() != 1 {
		t.Errorf("answers = %d, want 1", s.run.Answers().Len())
	}

	s.Update(advanceMsg(time.Now()))
	if s.pending {
		t.Error("expected highlight to end")
	}
	if s.step.Index != 1 {
		t.Errorf("step = %d, want 1", s.step.Index)
	}
}

func TestGAD7_BackShowsPreviousAnswer(t *testing.T) {
	s := newGAD7(t, WithDelay(0))

	press(s, keyLeft)
	if s.step.Index != 0 {
		t.Fatal("back should be unavailable on the first question")
	}

	choose(s, 3)
	choose(s, 1)
	press(s, keyLeft)

	if s.step.Index != 1 {
		t.Fatalf("step = %d, want 1", s.step.Index)
	}
	if s.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (previous answer)", s.cursor)
	}

	// Right moves forward again over an answered question.
	press(s, keyRight)
	if s.step.Index != 2 {
		t.Errorf("step = %d, want 2", s.step.Index)
	}

	// Right on an unanswered question is refused.
	press(s, keyRight)
	if s.step.Index != 2 {
		t.Errorf("step = %d, want 2", s.step.Index)
	}
	if s.errMsg == "" {
		t.Error("expected an answer-required message")
	}
}

func TestGAD7_NoBackFromDifficulty(t *testing.T) {
	s := newGAD7(t, WithDelay(0))
	for range 7 {
		choose(s, 0)
	}
	press(s, keyLeft)
	if !s.step.Final {
		t.Error("expected to stay on the difficulty step")
	}
}

func TestEscCancels(t *testing.T) {
	s := newGAD7(t, WithDelay(0))
	choose(s, 3)

	cmd := press(s, keyEsc)
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if !s.cancelled {
		t.Error("expected OnCancel")
	}
	if s.Phase() != screening.PhaseCancelled {
		t.Errorf("Phase = %v, want cancelled", s.Phase())
	}
	if s.run.Answers().Len() != 0 {
		t.Error("expected partial answers to be discarded")
	}
}

func TestEscCancelsDuringHighlight(t *testing.T) {
	s := newGAD7(t)
	if choose(s, 2) == nil || !s.pending {
		t.Fatal("expected pending highlight")
	}

	if cmd := press(s, keyEsc); cmd == nil {
		t.Fatal("expected cancel command")
	}
	if s.Phase() != screening.PhaseCancelled {
		t.Errorf("Phase = %v, want cancelled", s.Phase())
	}
	if s.pending {
		t.Error("expected highlight to end on cancel")
	}

	// The late tick no longer moves the screen.
	s.Update(advanceMsg(time.Now()))
	if s.step.Index != 0 {
		t.Errorf("step = %d, want 0", s.step.Index)
	}
}

func TestEscOnResultAcknowledges(t *testing.T) {
	s := newGAD7(t, WithDelay(0))
	for range 7 {
		choose(s, 0)
	}
	choose(s, 0)
	choose(s, len(s.rows)-1)
	if s.result == nil {
		t.Fatal("expected a result")
	}

	if cmd := press(s, keyEsc); cmd == nil {
		t.Fatal("expected completion command")
	}
	if s.cancelled {
		t.Error("a scored run must not be cancelled")
	}
	if s.delivered == nil || s.delivered.Interpretation != "Minimal Anxiety" {
		t.Errorf("delivered = %+v", s.delivered)
	}
}

func TestSDOH_Scenario(t *testing.T) {
	s := newSDOH(t)

	choose(s, 0) // q1 Yes
	press(s, keyRight)
	if s.step.Title != "Food & Transportation" {
		t.Fatalf("step = %q", s.step.Title)
	}
	press(s, keyRight)

	choose(s, 4) // q8 No
	press(s, keyRight)

	if s.step.Title != "Personal Safety" {
		t.Fatalf("step = %q", s.step.Title)
	}
	for _, r := range []int{0, 5, 10, 15} {
		choose(s, r) // Never
	}
	press(s, keyRight)

	if !s.step.Final {
		t.Fatal("expected the final section")
	}
	choose(s, len(s.rows)-1)
	if s.result == nil {
		t.Fatal("expected a result")
	}

	want := map[string]string{
		"Safety Score":    "4",
		"Safety Risk":     "No",
		"Requesting Help": "No",
		"Total Risks":     "2",
	}
	if s.result.Interpretation != "2 Social Risk(s) Identified" {
		t.Errorf("Interpretation = %q", s.result.Interpretation)
	}
	for k, v := range want {
		if s.result.Details[k] != v {
			t.Errorf("Details[%q] = %q, want %q", k, s.result.Details[k], v)
		}
	}
	if !strings.Contains(plain(s.View(100, 30)), "Done") {
		t.Error("expected Done button")
	}
}

func TestSDOH_ActionRowAdvances(t *testing.T) {
	s := newSDOH(t)
	choose(s, len(s.rows)-1)
	if s.step.Index != 1 {
		t.Errorf("step = %d, want 1", s.step.Index)
	}
	press(s, keyLeft)
	if s.step.Index != 0 {
		t.Errorf("step = %d, want 0 after back", s.step.Index)
	}
}

func TestSDOH_HazardToggle(t *testing.T) {
	s := newSDOH(t)

	choose(s, 3) // Mold
	choose(s, 8) // Water leaks
	q2 := screening.SDOHSections[0].Questions[1]
	got := s.run.Answers().Selected(q2.ID)
	if len(got) != 2 {
		t.Fatalf("selected = %v, want Mold and Water leaks", got)
	}

	choose(s, 9) // None of the above
	got = s.run.Answers().Selected(q2.ID)
	if len(got) != 1 || got[0] != screening.HazardNone {
		t.Errorf("selected = %v, want only %q", got, screening.HazardNone)
	}
	if !strings.Contains(plain(s.View(100, 40)), "[x] None of the above") {
		t.Error("expected the null option to render checked")
	}
}

func TestView_ScrollsToCursor(t *testing.T) {
	s := newSDOH(t)
	choose(s, len(s.rows)-2) // last option before the action row

	view := plain(s.View(100, 14))
	if !strings.Contains(view, "Already shut off") {
		t.Error("expected the cursor row to stay visible")
	}
}

func TestKeyHints(t *testing.T) {
	s := newSDOH(t)
	hints := s.KeyHints()
	if hints[len(hints)-1].Key != "Esc" {
		t.Errorf("last hint = %q, want Esc", hints[len(hints)-1].Key)
	}
	if !s.HandlesEscape() {
		t.Error("screener must handle Esc itself")
	}
}
