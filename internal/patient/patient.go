// Package patient holds the patient record shown on the dashboard and the
// seeded demo profile.
package patient

import (
	"slices"
	"strings"

	"github.com/curanostics/curanostics/internal/screening"
)

// Status is the lifecycle state of a medication or diagnosis.
type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusPaused    Status = "Paused"
)

// Adherence tracks doses taken for a medication.
type Adherence struct {
	LastTaken  string `json:"lastTaken,omitempty"`
	DosesTaken int    `json:"dosesTaken"`
}

type Medication struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage"`
	Frequency    string     `json:"frequency"`
	PrescribedBy string     `json:"prescribedBy"`
	Source       string     `json:"source,omitempty"`
	Status       Status     `json:"status"`
	Adherence    *Adherence `json:"adherence,omitempty"`
}

type Diagnosis struct {
	ID            string   `json:"id"`
	Condition     string   `json:"condition"`
	DiagnosedDate string   `json:"diagnosedDate"`
	Stage         string   `json:"stage,omitempty"`
	Subtypes      []string `json:"subtypes,omitempty"` // e.g. ER+, HER2-
	Notes         string   `json:"notes"`
	Source        string   `json:"source,omitempty"`
	Clinician     string   `json:"clinician,omitempty"`
	Status        Status   `json:"status"`
}

type LabResult struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	TestName  string `json:"testName"`
	Value     string `json:"value"`
	Unit      string `json:"unit,omitempty"`
	IsNormal  bool   `json:"isNormal"`
	RawReport string `json:"rawReport,omitempty"`
}

// SymptomLog is one daily check-in. Each score is in [0, 10].
type SymptomLog struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	Fatigue       int      `json:"fatigue"`
	Nausea        int      `json:"nausea"`
	Pain          int      `json:"pain"`
	Mood          int      `json:"mood"`
	OtherSymptoms []string `json:"otherSymptoms,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

type WearableMetric struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type WearableData struct {
	HeartRate []WearableMetric `json:"heartRate"`
	Steps     []WearableMetric `json:"steps"`
	Sleep     []WearableMetric `json:"sleep"`
}

type ConnectedSources struct {
	Fasten  bool `json:"fasten"`
	Validic bool `json:"validic"`
}

// Profile is the full patient record. Surveys and Symptoms are kept in
// chronological order, oldest first.
type Profile struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Email            string                   `json:"email,omitempty"`
	DOB              string                   `json:"dob"`
	BloodType        string                   `json:"bloodType"`
	Allergies        []string                 `json:"allergies"`
	Medications      []Medication             `json:"medications"`
	Diagnoses        []Diagnosis              `json:"diagnoses"`
	Surveys          []screening.SurveyResult `json:"surveys"`
	Labs             []LabResult              `json:"labs"`
	Symptoms         []SymptomLog             `json:"symptoms"`
	WearableData     WearableData             `json:"wearableData"`
	ConnectedSources ConnectedSources         `json:"connectedSources"`
}

// FirstName returns the first word of the patient's name.
func (p Profile) FirstName() string {
	first, _, _ := strings.Cut(p.Name, " ")
	return first
}

// WithSurvey returns a copy of p with r appended to its surveys.
func (p Profile) WithSurvey(r screening.SurveyResult) Profile {
	p.Surveys = append(slices.Clone(p.Surveys), r.Clone())
	return p
}

// WithSymptom returns a copy of p with l appended to its symptom logs.
func (p Profile) WithSymptom(l SymptomLog) Profile {
	p.Symptoms = append(slices.Clone(p.Symptoms), l)
	return p
}

// LatestSurvey returns the newest survey of the given instrument.
func (p Profile) LatestSurvey(inst screening.Instrument) (screening.SurveyResult, bool) {
	for _, s := range slices.Backward(p.Surveys) {
		if s.Type == inst {
			return s, true
		}
	}
	return screening.SurveyResult{}, false
}

// LatestSymptom returns the most recent symptom log.
func (p Profile) LatestSymptom() (SymptomLog, bool) {
	if len(p.Symptoms) == 0 {
		return SymptomLog{}, false
	}
	return p.Symptoms[len(p.Symptoms)-1], true
}

// ActiveMedications returns medications with StatusActive.
func (p Profile) ActiveMedications() []Medication {
	var out []Medication
	for _, m := range p.Medications {
		if m.Status == StatusActive {
			out = append(out, m)
		}
	}
	return out
}
