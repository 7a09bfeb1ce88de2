package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var surveyColumns = []string{
	"survey_id", "survey_type", "survey_date", "score",
	"interpretation", "requested_by", "details",
}

func (r *eventRepo) AppendSurvey(ctx context.Context, data SurveyEventData) error {
	details, err := json.Marshal(data.Details)
	if err != nil {
		return fmt.Errorf("marshal survey details: %w", err)
	}
	if data.Details == nil {
		details = []byte("{}")
	}

	err = r.insertEvent(ctx, SurveyEventsTable.Name, surveyColumns, []any{
		data.SurveyID, data.Type, data.Date, data.Score,
		data.Interpretation, data.RequestedBy, string(details),
	})
	if err != nil {
		return fmt.Errorf("save survey event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySurveys(ctx context.Context, surveyType string, opts QueryOpts) ([]SurveyRecord, error) {
	sel := selectEvents(SurveyEventsTable.Name, surveyColumns, opts)
	if surveyType != "" {
		sel.Where(entsql.EQ("survey_type", surveyType))
	}

	var records []SurveyRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		rec, err := scanSurvey(rows)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query survey events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) LatestSurvey(ctx context.Context, surveyType string) (*SurveyRecord, error) {
	records, err := r.QuerySurveys(ctx, surveyType, QueryOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func scanSurvey(rows *sql.Rows) (SurveyRecord, error) {
	var (
		rec     SurveyRecord
		details string
	)
	err := rows.Scan(
		&rec.ID, &rec.Sequence, &rec.Timestamp,
		&rec.SurveyID, &rec.Type, &rec.Date, &rec.Score,
		&rec.Interpretation, &rec.RequestedBy, &details,
	)
	if err != nil {
		return SurveyRecord{}, err
	}
	if err := json.Unmarshal([]byte(details), &rec.Details); err != nil {
		return SurveyRecord{}, fmt.Errorf("unmarshal survey details: %w", err)
	}
	return rec, nil
}
