package patient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curanostics/curanostics/internal/screening"
)

func TestDemo(t *testing.T) {
	p := Demo()
	assert.Equal(t, "Sarah", p.FirstName())
	assert.Len(t, p.ActiveMedications(), 2)
	assert.Len(t, p.WearableData.Steps, 7)

	latest, ok := p.LatestSymptom()
	require.True(t, ok)
	assert.Equal(t, "2024-11-25", latest.Date)

	gad, ok := p.LatestSurvey(screening.InstrumentGAD7)
	require.True(t, ok)
	assert.Equal(t, 4, gad.Score)

	_, ok = p.LatestSurvey(screening.InstrumentSDOH)
	assert.False(t, ok)
}

func TestWithSurvey_DoesNotMutateOriginal(t *testing.T) {
	p := Demo()
	r := screening.SurveyResult{
		ID:      "s-new",
		Type:    screening.InstrumentSDOH,
		Score:   2,
		Details: map[string]string{"Total Risks": "2"},
	}

	q := p.WithSurvey(r)
	assert.Len(t, p.Surveys, 1)
	require.Len(t, q.Surveys, 2)

	r.Details["Total Risks"] = "99"
	assert.Equal(t, "2", q.Surveys[1].Details["Total Risks"])

	latest, ok := q.LatestSurvey(screening.InstrumentSDOH)
	require.True(t, ok)
	assert.Equal(t, "s-new", latest.ID)
}

func TestWithSymptom(t *testing.T) {
	p := Demo()
	q := p.WithSymptom(SymptomLog{ID: "log4", Date: "2024-11-26", Fatigue: 2})

	assert.Len(t, p.Symptoms, 3)
	latest, _ := q.LatestSymptom()
	assert.Equal(t, "log4", latest.ID)
}

func TestProfileJSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Demo())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, key := range []string{"bloodType", "wearableData", "connectedSources", "surveys"} {
		assert.Contains(t, raw, key)
	}
	survey := raw["surveys"].([]any)[0].(map[string]any)
	assert.Equal(t, "GAD-7", survey["type"])
	assert.NotContains(t, survey, "requestedBy")
}

func TestLatestSymptom_Empty(t *testing.T) {
	_, ok := Profile{}.LatestSymptom()
	assert.False(t, ok)
}
