package insights

import "github.com/curanostics/curanostics/internal/llm"

// DailyInsightSchema defines the JSON schema for the daily insight.
var DailyInsightSchema = &llm.Schema{
	Name:        "daily-insight",
	Description: "A short, empowering daily note for a patient in cancer care",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title (2-5 words)",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "One or two encouraging sentences",
			},
		},
		"required":             []any{"title", "content"},
		"additionalProperties": false,
	},
}

// ExplanationSchema defines the JSON schema for concept explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "concept-explanation",
	Description: "Plain-language explanation of a medical term with one action item",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The concept being explained",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Supportive, easy to understand explanation (3-6 sentences)",
			},
			"actionItem": map[string]any{
				"type":        "string",
				"description": "One specific thing to discuss with the care team",
			},
		},
		"required":             []any{"title", "explanation", "actionItem"},
		"additionalProperties": false,
	},
}
