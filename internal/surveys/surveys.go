// Package surveys persists completed screener results and reads them back
// as screening.SurveyResult values.
package surveys

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/screening"
	"github.com/curanostics/curanostics/internal/store"
)

// Service saves and loads survey results.
type Service struct {
	repo   store.SurveyRepo
	logger *zap.Logger
}

// NewService creates a survey Service.
func NewService(repo store.SurveyRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger.Named("surveys")}
}

// Save persists a scored result.
func (s *Service) Save(ctx context.Context, r screening.SurveyResult) error {
	if r.ID == "" {
		return fmt.Errorf("save survey: missing id")
	}
	err := s.repo.AppendSurvey(ctx, store.SurveyEventData{
		SurveyID:       r.ID,
		Type:           string(r.Type),
		Date:           r.Date,
		Score:          r.Score,
		Interpretation: r.Interpretation,
		RequestedBy:    r.RequestedBy,
		Details:        maps.Clone(r.Details),
	})
	if err != nil {
		return fmt.Errorf("save survey: %w", err)
	}

	s.logger.Info("survey saved",
		zap.String("id", r.ID),
		zap.String("type", string(r.Type)),
		zap.Int("score", r.Score),
	)
	return nil
}

// History returns up to limit results newest first. An empty instrument
// matches every type; a limit of 0 returns everything.
func (s *Service) History(ctx context.Context, inst screening.Instrument, limit int) ([]screening.SurveyResult, error) {
	records, err := s.repo.QuerySurveys(ctx, string(inst), store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("load survey history: %w", err)
	}

	out := make([]screening.SurveyResult, len(records))
	for i, rec := range records {
		out[i] = fromRecord(rec)
	}
	return out, nil
}

// Latest returns the newest result for inst.
func (s *Service) Latest(ctx context.Context, inst screening.Instrument) (screening.SurveyResult, bool, error) {
	rec, err := s.repo.LatestSurvey(ctx, string(inst))
	if err != nil {
		return screening.SurveyResult{}, false, fmt.Errorf("load latest survey: %w", err)
	}
	if rec == nil {
		return screening.SurveyResult{}, false, nil
	}
	return fromRecord(*rec), true, nil
}

// Restore appends every persisted result to p in chronological order.
func (s *Service) Restore(ctx context.Context, p patient.Profile) (patient.Profile, error) {
	results, err := s.History(ctx, "", 0)
	if err != nil {
		return p, err
	}
	for _, r := range slices.Backward(results) {
		p = p.WithSurvey(r)
	}
	return p, nil
}

func fromRecord(rec store.SurveyRecord) screening.SurveyResult {
	r := screening.SurveyResult{
		ID:             rec.SurveyID,
		Type:           screening.Instrument(rec.Type),
		Date:           rec.Date,
		Score:          rec.Score,
		Interpretation: rec.Interpretation,
		RequestedBy:    rec.RequestedBy,
	}
	if len(rec.Details) > 0 {
		r.Details = maps.Clone(rec.Details)
	}
	return r
}
