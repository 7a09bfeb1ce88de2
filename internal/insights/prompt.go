package insights

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/curanostics/curanostics/internal/patient"
)

const clinicalSummarySystemPrompt = `You are an expert Oncology Assistant specialized in helping Black women navigate breast cancer care.`

func buildClinicalSummaryMessage(p patient.Profile) string {
	var b strings.Builder
	b.WriteString(`Analyze this patient record and provide a "Visit Summary" for their next oncology appointment.

Focus on:
1. Breast Cancer details (Stage, ER/PR/HER2 status).
2. Symptom trends (Fatigue, Nausea, Pain).
3. Emotional wellbeing.
4. Highlight specific health equity considerations or community resources that might be relevant.

Keep it supportive, concise, and structured for a 15-minute doctor visit.

Patient Record: `)
	b.WriteString(toJSON(p))
	return b.String()
}

const engagementSystemPrompt = `You are a Clinical Trial Engagement Specialist.`

func buildEngagementMessage(p patient.Profile) string {
	adherence := make([]string, len(p.Medications))
	for i, m := range p.Medications {
		doses := 0
		if m.Adherence != nil {
			doses = m.Adherence.DosesTaken
		}
		adherence[i] = fmt.Sprintf("%s: %d doses", m.Name, doses)
	}

	var b strings.Builder
	b.WriteString(`Analyze this participant's data and provide a brief (2-sentence) "Study Momentum Statement."
Focus on:
1. The quality and consistency of their data contribution (symptom logs, medication tracking).
2. Their role as a vital contributor to oncology research.

Context:
`)
	b.WriteString(fmt.Sprintf("- Symptom Diaries submitted: %d\n", len(p.Symptoms)))
	b.WriteString(fmt.Sprintf("- Med Adherence recorded: %s\n", strings.Join(adherence, ", ")))
	b.WriteString(fmt.Sprintf("- Screening surveys completed: %d\n", len(p.Surveys)))
	b.WriteString("- Wearable uptime: 96%\n")
	b.WriteString(`
Tone: Clinical, Professional, and Gratitude-focused. Highlight "Health Literacy" and "Protocol Fidelity".`)
	return b.String()
}

// trendWindow is the number of most recent logs sent for trend analysis.
const trendWindow = 7

func buildSymptomTrendsMessage(logs []patient.SymptomLog, meds []patient.Medication) string {
	if len(logs) > trendWindow {
		logs = logs[len(logs)-trendWindow:]
	}

	var b strings.Builder
	b.WriteString(`Analyze the following symptom log and medication list for a breast cancer patient.
Identify any potential correlations or noteworthy trends.
Keep the tone supportive, empowering, and clinical but accessible.

`)
	b.WriteString("Symptom History: " + toJSON(logs) + "\n")
	b.WriteString("Medications: " + toJSON(meds) + "\n")
	b.WriteString("\nProvide a 2-3 sentence insight focusing on patterns or reassurance.")
	return b.String()
}

func buildLabSummaryMessage(lab patient.LabResult) string {
	report := lab.RawReport
	if report == "" {
		report = lab.TestName
	}
	return `Translate the following medical pathology/lab report into plain, supportive language for a patient.
Explain what terms like "margins", "Nottingham Grade", and "hormone receptors" mean if present.
Focus on being clear and reducing anxiety.

Report: ` + report
}

const visitQuestionsSystemPrompt = `You are an oncology expert. You want to empower your patient to have a high-quality discussion.`

func buildVisitQuestionsMessage(p patient.Profile) string {
	condition, stage := "unknown", "unknown"
	if len(p.Diagnoses) > 0 {
		condition, stage = p.Diagnoses[0].Condition, p.Diagnoses[0].Stage
	}
	names := make([]string, len(p.Medications))
	for i, m := range p.Medications {
		names[i] = m.Name
	}
	fatigue := "untracked"
	if l, ok := p.LatestSymptom(); ok && l.Fatigue > 0 {
		fatigue = fmt.Sprintf("%d", l.Fatigue)
	}

	var b strings.Builder
	b.WriteString("Generate 5 professional and medically specific questions for the patient to ask their oncology team.\n\n")
	b.WriteString("Current Patient Status:\n")
	b.WriteString(fmt.Sprintf("- Diagnosis: %s (%s)\n", condition, stage))
	b.WriteString(fmt.Sprintf("- Medications: %s\n", strings.Join(names, ", ")))
	b.WriteString(fmt.Sprintf("- Latest Symptom Data: Fatigue is %s/10.\n", fatigue))
	b.WriteString(`
Instructions:
1. Write the questions in the first person ("Can you explain...").
2. Frame each question with a clinical recommendation prefix such as "Your clinical team suggests asking:" or "Clinical Recommendation:".
3. Focus on tumor markers, medication side-effect management, and long-term recovery.

Return as a simple bulleted list of strings.`)
	return b.String()
}

const dailyInsightMessage = `Generate a short, empowering "Daily Wisdom" for a Black woman navigating breast cancer.
Focus on self-care, health advocacy, or mental resilience.
Return JSON with "title" and "content".`

func buildExplanationMessage(concept string, kind ConceptKind, p patient.Profile) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Explain the following %s: %q.\n", kind, concept))
	b.WriteString("The patient is a Black woman navigating breast cancer.\n")
	if len(p.Diagnoses) > 0 {
		d := p.Diagnoses[0]
		b.WriteString(fmt.Sprintf("Current diagnosis: %s (%s).\n", d.Condition, d.Stage))
	}
	b.WriteString(`Tailor the explanation to be supportive, culturally sensitive, and easy to understand.
Provide one specific "action item" for the patient to discuss with their care team.

Return as JSON with "title", "explanation", and "actionItem".`)
	return b.String()
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
