package screener

import (
	"time"

	"github.com/curanostics/curanostics/internal/screening"
)

// CompletedMsg carries an acknowledged result to the app, which appends it
// to the patient record and persists it.
type CompletedMsg struct {
	Result screening.SurveyResult
}

// CancelledMsg reports that the user aborted a screener.
type CancelledMsg struct {
	Instrument screening.Instrument
}

// advanceMsg ends the highlight delay after a scored answer.
type advanceMsg time.Time

// HighlightDelay is how long a GAD-7 selection stays highlighted before the
// next question is shown.
const HighlightDelay = 250 * time.Millisecond
