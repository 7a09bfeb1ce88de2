package screening

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Instrument identifies a questionnaire.
type Instrument string

const (
	InstrumentGAD7 Instrument = "GAD-7"
	InstrumentSDOH Instrument = "SDOH"
	InstrumentPHQ9 Instrument = "PHQ-9"
)

// idPrefix is prepended to generated result IDs.
func (i Instrument) idPrefix() string {
	switch i {
	case InstrumentGAD7:
		return "gad7-"
	case InstrumentSDOH:
		return "s-"
	default:
		return "survey-"
	}
}

// SurveyResult is the record produced by a completed screener run. It is
// created once and handed to the host unchanged.
type SurveyResult struct {
	ID             string            `json:"id"`
	Type           Instrument        `json:"type"`
	Date           string            `json:"date"`
	Score          int               `json:"score"`
	Interpretation string            `json:"interpretation"`
	RequestedBy    string            `json:"requestedBy,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate a shared Details map.
func (r SurveyResult) Clone() SurveyResult {
	r.Details = maps.Clone(r.Details)
	return r
}

// Score is the output of a scoring function, before an ID and date are
// attached.
type Score struct {
	Value          int
	Interpretation string
	Details        map[string]string
}

// newResult stamps a Score with an ID and the UTC calendar date of now.
func newResult(inst Instrument, s Score, now time.Time) SurveyResult {
	return SurveyResult{
		ID:             inst.idPrefix() + uuid.NewString(),
		Type:           inst,
		Date:           now.UTC().Format(time.DateOnly),
		Score:          s.Value,
		Interpretation: s.Interpretation,
		Details:        maps.Clone(s.Details),
	}
}
