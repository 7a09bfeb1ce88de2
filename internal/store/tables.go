package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventColumns returns the columns shared by every event table: the row ID,
// the global sequence number, and the UTC timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}, extra...)
}

func eventTable(name string, extra ...*schema.Column) *schema.Table {
	cols := eventColumns(extra...)
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
}

func column(t *schema.Table, name string) *schema.Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	panic("store: unknown column " + t.Name + "." + name)
}

var (
	// SurveyEventsTable holds one row per completed screener.
	SurveyEventsTable = eventTable("survey_events",
		&schema.Column{Name: "survey_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "survey_type", Type: field.TypeString},
		&schema.Column{Name: "survey_date", Type: field.TypeString},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "interpretation", Type: field.TypeString},
		&schema.Column{Name: "requested_by", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "details", Type: field.TypeString, Size: 4096, Default: "{}"},
	)

	// SymptomEventsTable holds one row per symptom check-in.
	SymptomEventsTable = eventTable("symptom_events",
		&schema.Column{Name: "log_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "log_date", Type: field.TypeString},
		&schema.Column{Name: "fatigue", Type: field.TypeInt},
		&schema.Column{Name: "nausea", Type: field.TypeInt},
		&schema.Column{Name: "pain", Type: field.TypeInt},
		&schema.Column{Name: "mood", Type: field.TypeInt},
		&schema.Column{Name: "notes", Type: field.TypeString, Size: 4096, Default: ""},
	)

	// LLMRequestEventsTable records every LLM API call for cost tracking
	// and debugging.
	LLMRequestEventsTable = eventTable("llm_request_events",
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 4096, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 65535, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 65535, Default: ""},
	)

	globalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}

	// GlobalSequenceTable is the single-row counter behind sequenceCounter.
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    globalSequenceColumns,
		PrimaryKey: []*schema.Column{globalSequenceColumns[0]},
	}

	// Tables lists every table managed by auto-migration.
	Tables = []*schema.Table{
		GlobalSequenceTable,
		SurveyEventsTable,
		SymptomEventsTable,
		LLMRequestEventsTable,
	}
)

func init() {
	SurveyEventsTable.Indexes = append(SurveyEventsTable.Indexes, &schema.Index{
		Name:    "survey_events_survey_type",
		Columns: []*schema.Column{column(SurveyEventsTable, "survey_type")},
	})
	LLMRequestEventsTable.Indexes = append(LLMRequestEventsTable.Indexes,
		&schema.Index{Name: "llm_request_events_purpose", Columns: []*schema.Column{column(LLMRequestEventsTable, "purpose")}},
		&schema.Index{Name: "llm_request_events_model", Columns: []*schema.Column{column(LLMRequestEventsTable, "model")}},
	)
}
