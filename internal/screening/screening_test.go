package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New(InstrumentGAD7, Hooks{})
	require.NoError(t, err)
	assert.Equal(t, InstrumentGAD7, g.Instrument())

	s, err := New(InstrumentSDOH, Hooks{})
	require.NoError(t, err)
	assert.Equal(t, InstrumentSDOH, s.Instrument())

	_, err = New(InstrumentPHQ9, Hooks{})
	assert.Error(t, err)
}

func TestStepLabel(t *testing.T) {
	g := NewGAD7(Hooks{})
	assert.Equal(t, "1/7", StepLabel(InstrumentGAD7, g.Start()))
	assert.Equal(t, 0.0, Progress(g.Step()))

	s := NewSDOH(Hooks{})
	assert.Equal(t, "Step 1 of 5", StepLabel(InstrumentSDOH, s.Start()))
}

func TestAnswers_RecordValidation(t *testing.T) {
	a := NewAnswers()
	q := GAD7Questions[0]

	assert.ErrorIs(t, a.Record(q, "Sometimes"), ErrInvalidOption)
	assert.ErrorIs(t, a.SetScale(q, 4), ErrInvalidOption)
	assert.ErrorIs(t, a.SetScale(GAD7Difficulty, 1), ErrInvalidOption)
	assert.False(t, a.Has(q.ID))

	require.NoError(t, a.Record(q, "Nearly every day"))
	v, ok := a.Scale(q.ID)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	ans, ok := a.Get(q.ID)
	require.True(t, ok)
	assert.Equal(t, OrdinalScale, ans.Modality)
	assert.Equal(t, 3, ans.Value)
}
