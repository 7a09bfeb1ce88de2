package patient

import "github.com/curanostics/curanostics/internal/screening"

// Demo returns the seeded demo patient. Each call returns a fresh copy.
func Demo() Profile {
	return Profile{
		ID:        "pt-12345",
		Name:      "Sarah Jenkins",
		DOB:       "1988-05-12",
		BloodType: "O+",
		Allergies: []string{"Penicillin", "Latex"},
		Medications: []Medication{
			{
				ID:           "m1",
				Name:         "Tamoxifen",
				Dosage:       "20mg",
				Frequency:    "Daily",
				PrescribedBy: "Dr. Arisara",
				Status:       StatusActive,
				Adherence:    &Adherence{DosesTaken: 28},
			},
			{
				ID:           "m2",
				Name:         "Zoladex",
				Dosage:       "3.6mg",
				Frequency:    "Every 4 weeks",
				PrescribedBy: "Dr. Arisara",
				Status:       StatusActive,
				Adherence:    &Adherence{DosesTaken: 4},
			},
		},
		Diagnoses: []Diagnosis{
			{
				ID:            "d1",
				Condition:     "Invasive Ductal Carcinoma",
				DiagnosedDate: "2024-02-15",
				Stage:         "Stage II",
				Subtypes:      []string{"ER+", "PR+", "HER2-"},
				Notes:         "Right breast, Nottingham Grade 2",
				Status:        StatusActive,
			},
		},
		Surveys: []screening.SurveyResult{
			{
				ID:             "s1",
				Type:           screening.InstrumentGAD7,
				Date:           "2024-11-20",
				Score:          4,
				Interpretation: "Minimal Anxiety",
			},
		},
		Labs: []LabResult{
			{
				ID:        "l1",
				Date:      "2024-11-15",
				TestName:  "Pathology Report",
				Value:     "See Summary",
				IsNormal:  true,
				RawReport: "Specimen A: Right breast mass. Diagnosis: Invasive ductal carcinoma. Nottingham Grade 2. Margins clear (>2mm). ER/PR strongly positive. HER2 negative by IHC (score 1+).",
			},
		},
		Symptoms: []SymptomLog{
			{ID: "log3", Date: "2024-11-23", Fatigue: 5, Nausea: 2, Pain: 3, Mood: 6},
			{ID: "log2", Date: "2024-11-24", Fatigue: 3, Nausea: 0, Pain: 1, Mood: 8},
			{ID: "log1", Date: "2024-11-25", Fatigue: 4, Nausea: 1, Pain: 2, Mood: 7, Notes: "Mild joint stiffness in the morning."},
		},
		WearableData: WearableData{
			HeartRate: series(72, 74, 71, 75, 78, 73, 72),
			Steps:     series(4500, 5200, 3800, 6100, 4900, 5500, 4200),
			Sleep:     series(6.5, 7.2, 5.8, 7.0, 6.2, 8.1, 7.4),
		},
		ConnectedSources: ConnectedSources{Fasten: true, Validic: true},
	}
}

var wearableDates = []string{
	"2024-11-19", "2024-11-20", "2024-11-21", "2024-11-22",
	"2024-11-23", "2024-11-24", "2024-11-25",
}

func series(values ...float64) []WearableMetric {
	out := make([]WearableMetric, len(values))
	for i, v := range values {
		out[i] = WearableMetric{Date: wearableDates[i], Value: v}
	}
	return out
}
