package screening

import "errors"

var (
	// ErrCompleted is returned for any mutation after the result was scored.
	ErrCompleted = errors.New("screener already completed")

	// ErrClosed is returned once the screener was acknowledged or cancelled.
	ErrClosed = errors.New("screener closed")

	// ErrNotReady is returned when scoring is requested before the final
	// step, or before the final step's required answer is set.
	ErrNotReady = errors.New("screener not ready to score")

	// ErrNotScored is returned when acknowledging before a result exists.
	ErrNotScored = errors.New("screener has no result")

	// ErrNoBack is returned when backward navigation is not permitted.
	ErrNoBack = errors.New("cannot go back from this step")

	// ErrNoNext is returned when forward navigation is not permitted.
	ErrNoNext = errors.New("cannot advance from this step")

	// ErrUnknownQuestion is returned for question IDs outside the current step.
	ErrUnknownQuestion = errors.New("question not on current step")

	// ErrInvalidOption is returned for labels or values not in the catalog.
	ErrInvalidOption = errors.New("option not offered by question")
)
