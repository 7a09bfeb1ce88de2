package screening

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 11, 26, 22, 15, 0, 0, time.UTC) }

func answerGAD7(t *testing.T, g *GAD7, values []int) {
	t.Helper()
	for i, v := range values {
		q := GAD7Questions[i]
		require.Equal(t, i, g.Position())
		require.NoError(t, g.Answer(q.ID, q.Options[v].Label))
	}
}

func TestAnxietySeverity_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "Minimal Anxiety"},
		{4, "Minimal Anxiety"},
		{5, "Mild Anxiety"},
		{9, "Mild Anxiety"},
		{10, "Moderate Anxiety"},
		{14, "Moderate Anxiety"},
		{15, "Severe Anxiety"},
		{21, "Severe Anxiety"},
	}
	for _, tt := range tests {
		if got := AnxietySeverity(tt.score); got != tt.want {
			t.Errorf("AnxietySeverity(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreGAD7_SumOverAllValueCombinations(t *testing.T) {
	// All 4^7 combinations.
	values := make([]int, 7)
	for n := 0; n < 1<<14; n++ {
		a := NewAnswers()
		want := 0
		for i := range values {
			values[i] = (n >> (2 * i)) & 3
			want += values[i]
			require.NoError(t, a.SetScale(GAD7Questions[i], values[i]))
		}
		s := ScoreGAD7(a)
		if s.Value != want {
			t.Fatalf("values %v: score = %d, want %d", values, s.Value, want)
		}
		if s.Value < 0 || s.Value > GAD7MaxScore {
			t.Fatalf("values %v: score %d out of range", values, s.Value)
		}
	}
}

func TestGAD7_Scenario(t *testing.T) {
	var got *SurveyResult
	g := NewGAD7(Hooks{
		OnComplete: func(r SurveyResult) { got = &r },
		Now:        fixedNow,
	})
	g.Start()

	answerGAD7(t, g, []int{0, 1, 2, 3, 1, 0, 2})
	assert.Equal(t, PhaseReadyToScore, g.Phase())
	assert.True(t, g.Step().Final)

	require.NoError(t, g.Answer(GAD7DifficultyID, "Somewhat difficult"))
	res, err := g.Complete()
	require.NoError(t, err)

	assert.Equal(t, InstrumentGAD7, res.Type)
	assert.Equal(t, 9, res.Score)
	assert.Equal(t, "Mild Anxiety", res.Interpretation)
	assert.Equal(t, "2024-11-26", res.Date)
	assert.Equal(t, map[string]string{
		"Functional Difficulty": "Somewhat difficult",
		"Severity Level":        "Mild Anxiety",
	}, res.Details)
	assert.Regexp(t, `^gad7-`, res.ID)
	assert.Equal(t, PhaseScored, g.Phase())
	assert.Nil(t, got, "host must not receive the result before acknowledgement")

	require.NoError(t, g.Acknowledge())
	require.NotNil(t, got)
	assert.Equal(t, res, *got)
	assert.Equal(t, PhaseAcknowledged, g.Phase())
}

func TestGAD7_CompleteRequiresDifficulty(t *testing.T) {
	g := NewGAD7(Hooks{})
	answerGAD7(t, g, []int{1, 1, 1, 1, 1, 1, 1})

	_, err := g.Complete()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, PhaseReadyToScore, g.Phase())
}

func TestGAD7_CompleteBeforeFinalStep(t *testing.T) {
	g := NewGAD7(Hooks{})
	answerGAD7(t, g, []int{1, 2})

	_, err := g.Complete()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, PhaseInProgress, g.Phase())
}

func TestScoreGAD7_UnansweredDifficulty(t *testing.T) {
	s := ScoreGAD7(NewAnswers())
	assert.Equal(t, 0, s.Value)
	assert.Equal(t, "Not answered", s.Details["Functional Difficulty"])
	assert.Equal(t, "Minimal Anxiety", s.Details["Severity Level"])
}

func TestGAD7_BackNavigation(t *testing.T) {
	g := NewGAD7(Hooks{})
	assert.False(t, g.CanBack(), "no back from the first question")
	assert.ErrorIs(t, g.Back(), ErrNoBack)

	answerGAD7(t, g, []int{3, 3})
	require.NoError(t, g.Back())
	assert.Equal(t, 1, g.Position())

	// Re-answering the revisited question overwrites it and advances.
	require.NoError(t, g.Answer(GAD7Questions[1].ID, "Not at all"))
	assert.Equal(t, 2, g.Position())
	v, _ := g.Answers().Scale(GAD7Questions[1].ID)
	assert.Equal(t, 0, v)

	answerRest := []int{0, 0, 0, 0, 0}
	for i, val := range answerRest {
		q := GAD7Questions[i+2]
		require.NoError(t, g.Answer(q.ID, q.Options[val].Label))
	}
	assert.True(t, g.Step().Final)
	assert.False(t, g.CanBack())
	assert.ErrorIs(t, g.Back(), ErrNoBack)
}

func TestGAD7_NextOnlyWhenAnswered(t *testing.T) {
	g := NewGAD7(Hooks{})
	assert.ErrorIs(t, g.Next(), ErrNoNext)

	answerGAD7(t, g, []int{2})
	require.NoError(t, g.Back())
	require.NoError(t, g.Next())
	assert.Equal(t, 1, g.Position())
}

func TestGAD7_AnswerRejectsOtherSteps(t *testing.T) {
	g := NewGAD7(Hooks{})
	err := g.Answer(GAD7Questions[3].ID, "Not at all")
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	err = g.Answer(GAD7Questions[0].ID, "Always")
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, 0, g.Answers().Len())
}

func TestGAD7_TerminalAfterScoring(t *testing.T) {
	g := NewGAD7(Hooks{Now: fixedNow})
	answerGAD7(t, g, []int{0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, g.Answer(GAD7DifficultyID, "Not difficult at all"))
	first, err := g.Complete()
	require.NoError(t, err)

	assert.ErrorIs(t, g.Answer(GAD7DifficultyID, "Very difficult"), ErrCompleted)
	assert.ErrorIs(t, g.Back(), ErrCompleted)
	assert.ErrorIs(t, g.Next(), ErrCompleted)
	assert.ErrorIs(t, g.Cancel(), ErrCompleted)
	_, err = g.Complete()
	assert.ErrorIs(t, err, ErrCompleted)

	again, ok := g.Result()
	require.True(t, ok)
	assert.Equal(t, first, again)
	diff, _ := g.Answers().Choice(GAD7DifficultyID)
	assert.Equal(t, "Not difficult at all", diff)
}

func TestGAD7_Idempotence(t *testing.T) {
	g := NewGAD7(Hooks{Now: fixedNow})
	answerGAD7(t, g, []int{0, 1, 2, 3, 1, 0, 2})
	require.NoError(t, g.Answer(GAD7DifficultyID, "Somewhat difficult"))

	first := newResult(InstrumentGAD7, ScoreGAD7(g.Answers()), fixedNow())
	second := newResult(InstrumentGAD7, ScoreGAD7(g.Answers()), fixedNow().Add(48*time.Hour))
	assert.Equal(t, 9, first.Score)

	assert.NotEqual(t, first.ID, second.ID)
	first.ID, second.ID = "", ""
	first.Date, second.Date = "", ""
	assert.Equal(t, first, second)

	// The scored run keeps returning the same result.
	res, err := g.Complete()
	require.NoError(t, err)
	assert.ErrorIs(t, g.Answer(GAD7DifficultyID, "Very difficult"), ErrCompleted)
	again, ok := g.Result()
	require.True(t, ok)
	assert.Equal(t, res, again)
	res.ID, res.Date = "", ""
	assert.Equal(t, first, res)
}

func TestGAD7_ResultDetailsAreCopies(t *testing.T) {
	g := NewGAD7(Hooks{})
	answerGAD7(t, g, []int{1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, g.Answer(GAD7DifficultyID, "Very difficult"))
	res, err := g.Complete()
	require.NoError(t, err)

	res.Details["Severity Level"] = "tampered"
	stored, _ := g.Result()
	assert.Equal(t, "Mild Anxiety", stored.Details["Severity Level"])
}
