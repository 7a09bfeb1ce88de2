// Package symptoms records daily symptom check-ins and summarizes trends.
package symptoms

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/store"
)

// MaxScore is the top of every symptom scale.
const MaxScore = 10

// ErrOutOfRange is returned for a score outside [0, MaxScore].
var ErrOutOfRange = errors.New("symptom score out of range")

// Entry is the user's input for one check-in.
type Entry struct {
	Fatigue int
	Nausea  int
	Pain    int
	Mood    int
	Notes   string
}

// DefaultEntry is the starting position of the check-in sliders.
func DefaultEntry() Entry {
	return Entry{Fatigue: 3, Nausea: 0, Pain: 1, Mood: 7}
}

// Metric names one symptom scale.
type Metric string

const (
	Fatigue Metric = "Fatigue"
	Nausea  Metric = "Nausea"
	Pain    Metric = "Pain"
	Mood    Metric = "Mood"
)

// Metrics lists the scales in display order.
var Metrics = []Metric{Fatigue, Nausea, Pain, Mood}

// Get returns the value of m.
func (e Entry) Get(m Metric) int {
	switch m {
	case Fatigue:
		return e.Fatigue
	case Nausea:
		return e.Nausea
	case Pain:
		return e.Pain
	default:
		return e.Mood
	}
}

// Set returns a copy of e with m set to v, clamped to [0, MaxScore].
func (e Entry) Set(m Metric, v int) Entry {
	v = max(0, min(MaxScore, v))
	switch m {
	case Fatigue:
		e.Fatigue = v
	case Nausea:
		e.Nausea = v
	case Pain:
		e.Pain = v
	case Mood:
		e.Mood = v
	}
	return e
}

// Validate checks every score is within range.
func (e Entry) Validate() error {
	for _, m := range Metrics {
		if v := e.Get(m); v < 0 || v > MaxScore {
			return fmt.Errorf("%w: %s = %d", ErrOutOfRange, m, v)
		}
	}
	return nil
}

// Service records check-ins.
type Service struct {
	repo   store.SymptomRepo
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a symptom Service.
func NewService(repo store.SymptomRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Log validates and persists an entry, returning the created log.
func (s *Service) Log(ctx context.Context, e Entry) (patient.SymptomLog, error) {
	if err := e.Validate(); err != nil {
		return patient.SymptomLog{}, err
	}

	log := patient.SymptomLog{
		ID:      "log-" + uuid.NewString(),
		Date:    s.now().UTC().Format(time.DateOnly),
		Fatigue: e.Fatigue,
		Nausea:  e.Nausea,
		Pain:    e.Pain,
		Mood:    e.Mood,
		Notes:   e.Notes,
	}

	err := s.repo.AppendSymptom(ctx, store.SymptomEventData{
		LogID:   log.ID,
		Date:    log.Date,
		Fatigue: log.Fatigue,
		Nausea:  log.Nausea,
		Pain:    log.Pain,
		Mood:    log.Mood,
		Notes:   log.Notes,
	})
	if err != nil {
		return patient.SymptomLog{}, fmt.Errorf("save symptom log: %w", err)
	}

	s.logger.Info("symptom log saved", zap.String("id", log.ID))
	return log, nil
}

// History returns up to limit persisted logs in chronological order.
// A limit of 0 returns every log.
func (s *Service) History(ctx context.Context, limit int) ([]patient.SymptomLog, error) {
	records, err := s.repo.QuerySymptoms(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, err
	}

	logs := make([]patient.SymptomLog, len(records))
	for i, r := range records {
		logs[i] = patient.SymptomLog{
			ID:      r.LogID,
			Date:    r.Date,
			Fatigue: r.Fatigue,
			Nausea:  r.Nausea,
			Pain:    r.Pain,
			Mood:    r.Mood,
			Notes:   r.Notes,
		}
	}
	slices.Reverse(logs)
	return logs, nil
}

// Restore appends every persisted log to p in chronological order.
func (s *Service) Restore(ctx context.Context, p patient.Profile) (patient.Profile, error) {
	logs, err := s.History(ctx, 0)
	if err != nil {
		return p, fmt.Errorf("restore symptom logs: %w", err)
	}
	for _, l := range logs {
		p = p.WithSymptom(l)
	}
	return p, nil
}

// Averages holds per-metric means.
type Averages struct {
	Count   int
	Fatigue float64
	Nausea  float64
	Pain    float64
	Mood    float64
}

// Get returns the mean for m.
func (a Averages) Get(m Metric) float64 {
	switch m {
	case Fatigue:
		return a.Fatigue
	case Nausea:
		return a.Nausea
	case Pain:
		return a.Pain
	default:
		return a.Mood
	}
}

// Trend averages the last n logs of a chronological slice. n <= 0 uses
// every log.
func Trend(logs []patient.SymptomLog, n int) Averages {
	if n > 0 && len(logs) > n {
		logs = logs[len(logs)-n:]
	}
	if len(logs) == 0 {
		return Averages{}
	}

	var a Averages
	for _, l := range logs {
		a.Fatigue += float64(l.Fatigue)
		a.Nausea += float64(l.Nausea)
		a.Pain += float64(l.Pain)
		a.Mood += float64(l.Mood)
	}
	c := float64(len(logs))
	return Averages{
		Count:   len(logs),
		Fatigue: a.Fatigue / c,
		Nausea:  a.Nausea / c,
		Pain:    a.Pain / c,
		Mood:    a.Mood / c,
	}
}
