package insights

// Purpose labels recorded with each LLM request.
const (
	PurposeClinicalSummary  = "clinical-summary"
	PurposeEngagementReport = "engagement-report"
	PurposeSymptomTrends    = "symptom-trends"
	PurposeLabSummary       = "lab-summary"
	PurposeVisitQuestions   = "visit-questions"
	PurposeDailyInsight     = "daily-insight"
	PurposeExplainConcept   = "explain-concept"
)

// DailyInsight is a short encouraging note shown on the dashboard.
type DailyInsight struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ConceptKind classifies a term the patient asks about.
type ConceptKind string

const (
	KindCondition  ConceptKind = "condition"
	KindMedication ConceptKind = "medication"
	KindGeneral    ConceptKind = "general"
)

// Explanation is a plain-language explanation of a medical concept.
type Explanation struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	ActionItem  string `json:"actionItem"`
}

// Fallback text returned when generation fails or comes back empty.
const (
	fallbackSummaryEmpty     = "Summary unavailable."
	fallbackSummaryError     = "Error generating specialized summary."
	fallbackEngagementEmpty  = "Your consistent logging provides high-quality data for this study."
	fallbackEngagementError  = "Consistently logging data ensures the integrity of the clinical protocol."
	fallbackTrendsEmpty      = "Continue logging to see trends."
	fallbackTrendsError      = "Log more data to receive personalized symptom insights."
	fallbackLabEmpty         = "Translation unavailable."
	fallbackLabError         = "Error interpreting results."
	fallbackVisitQuestion    = "What are the next steps in my treatment?"
	fallbackExplanation      = "Unable to retrieve explanation."
	fallbackActionItem       = "Discuss this with your doctor."
)

// FallbackDailyInsight is shown when no insight can be generated.
var FallbackDailyInsight = DailyInsight{
	Title:   "Strength & Grace",
	Content: "You are the best advocate for your own health. Trust your voice today.",
}
