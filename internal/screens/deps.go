// Package screens holds what the TUI screens share: the services they call
// and read access to the patient record owned by the app model.
package screens

import (
	"github.com/curanostics/curanostics/internal/insights"
	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/symptoms"
)

// Deps are passed to every screen constructor. Nil services disable the
// features that need them.
type Deps struct {
	// Profile returns the current patient record. Only the app model
	// mutates it, in response to completion messages.
	Profile func() patient.Profile

	Symptoms *symptoms.Service
	Insights *insights.Service
}

// Patient returns the current profile, or the zero profile if unset.
func (d Deps) Patient() patient.Profile {
	if d.Profile == nil {
		return patient.Profile{}
	}
	return d.Profile()
}
