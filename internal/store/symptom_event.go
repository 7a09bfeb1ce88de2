package store

import (
	"context"
	"database/sql"
	"fmt"
)

var symptomColumns = []string{
	"log_id", "log_date", "fatigue", "nausea", "pain", "mood", "notes",
}

func (r *eventRepo) AppendSymptom(ctx context.Context, data SymptomEventData) error {
	err := r.insertEvent(ctx, SymptomEventsTable.Name, symptomColumns, []any{
		data.LogID, data.Date, data.Fatigue, data.Nausea, data.Pain, data.Mood, data.Notes,
	})
	if err != nil {
		return fmt.Errorf("save symptom event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySymptoms(ctx context.Context, opts QueryOpts) ([]SymptomRecord, error) {
	var records []SymptomRecord
	err := r.queryRows(ctx, selectEvents(SymptomEventsTable.Name, symptomColumns, opts), func(rows *sql.Rows) error {
		var rec SymptomRecord
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.LogID, &rec.Date, &rec.Fatigue, &rec.Nausea, &rec.Pain, &rec.Mood, &rec.Notes,
		); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query symptom events: %w", err)
	}
	return records, nil
}
