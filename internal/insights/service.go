package insights

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/curanostics/curanostics/internal/llm"
	"github.com/curanostics/curanostics/internal/patient"
)

// Service produces AI-assisted patient insights. Every method degrades to
// fixed fallback content when the provider fails, so callers never need to
// handle generation errors.
type Service struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// NewService creates a new insights service. A nil logger discards output.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		config:   cfg,
		logger:   logger.Named("insights"),
	}
}

// ClinicalSummary builds a visit summary for the next oncology appointment.
func (s *Service) ClinicalSummary(ctx context.Context, p patient.Profile) string {
	return s.text(ctx, PurposeClinicalSummary, clinicalSummarySystemPrompt,
		buildClinicalSummaryMessage(p), fallbackSummaryEmpty, fallbackSummaryError)
}

// EngagementReport builds a short study momentum statement.
func (s *Service) EngagementReport(ctx context.Context, p patient.Profile) string {
	return s.text(ctx, PurposeEngagementReport, engagementSystemPrompt,
		buildEngagementMessage(p), fallbackEngagementEmpty, fallbackEngagementError)
}

// SymptomTrends summarizes patterns in the most recent symptom logs.
func (s *Service) SymptomTrends(ctx context.Context, logs []patient.SymptomLog, meds []patient.Medication) string {
	return s.text(ctx, PurposeSymptomTrends, "",
		buildSymptomTrendsMessage(logs, meds), fallbackTrendsEmpty, fallbackTrendsError)
}

// LabSummary translates a lab or pathology report into plain language.
func (s *Service) LabSummary(ctx context.Context, lab patient.LabResult) string {
	return s.text(ctx, PurposeLabSummary, "",
		buildLabSummaryMessage(lab), fallbackLabEmpty, fallbackLabError)
}

var listPrefix = regexp.MustCompile(`^\s*[\*\-\d\.]+\s*`)

// VisitQuestions suggests questions to ask the oncology team.
func (s *Service) VisitQuestions(ctx context.Context, p patient.Profile) []string {
	resp, err := s.generate(ctx, PurposeVisitQuestions, visitQuestionsSystemPrompt,
		buildVisitQuestionsMessage(p), nil, s.config.TextMaxTokens)
	if err != nil {
		s.logger.Warn("visit questions failed", zap.Error(err))
		return []string{fallbackVisitQuestion}
	}

	questions := ParseQuestions(resp.Text())
	if len(questions) == 0 {
		return []string{fallbackVisitQuestion}
	}
	return questions
}

// ParseQuestions splits a bulleted or numbered list into its items.
func ParseQuestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		q := strings.TrimSpace(listPrefix.ReplaceAllString(line, ""))
		if q == "" {
			continue
		}
		out = append(out, q)
	}
	return out
}

// DailyInsight generates a short encouraging note.
func (s *Service) DailyInsight(ctx context.Context) DailyInsight {
	resp, err := s.generate(ctx, PurposeDailyInsight, "", dailyInsightMessage,
		DailyInsightSchema, s.config.JSONMaxTokens)
	if err != nil {
		s.logger.Warn("daily insight failed", zap.Error(err))
		return FallbackDailyInsight
	}

	out, err := llm.Decode[DailyInsight](resp)
	if err != nil || out.Title == "" || out.Content == "" {
		s.logger.Warn("daily insight unusable", zap.Error(err))
		return FallbackDailyInsight
	}
	return out
}

// ExplainConcept explains a diagnosis, medication or general term.
func (s *Service) ExplainConcept(ctx context.Context, concept string, kind ConceptKind, p patient.Profile) Explanation {
	fallback := Explanation{
		Title:       concept,
		Explanation: fallbackExplanation,
		ActionItem:  fallbackActionItem,
	}

	resp, err := s.generate(ctx, PurposeExplainConcept, "",
		buildExplanationMessage(concept, kind, p), ExplanationSchema, s.config.JSONMaxTokens)
	if err != nil {
		s.logger.Warn("explain concept failed", zap.String("concept", concept), zap.Error(err))
		return fallback
	}

	out, err := llm.Decode[Explanation](resp)
	if err != nil || out.Explanation == "" {
		s.logger.Warn("explanation unusable", zap.String("concept", concept), zap.Error(err))
		return fallback
	}
	if out.Title == "" {
		out.Title = concept
	}
	if out.ActionItem == "" {
		out.ActionItem = fallbackActionItem
	}
	return out
}

func (s *Service) text(ctx context.Context, purpose, system, user, empty, failed string) string {
	resp, err := s.generate(ctx, purpose, system, user, nil, s.config.TextMaxTokens)
	if err != nil {
		s.logger.Warn("generation failed", zap.String("purpose", purpose), zap.Error(err))
		return failed
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return empty
	}
	return text
}

func (s *Service) generate(ctx context.Context, purpose, system, user string, schema *llm.Schema, maxTokens int) (*llm.Response, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%s: no LLM provider configured", purpose)
	}

	ctx = llm.WithPurpose(ctx, purpose)
	req := llm.Request{
		System:      system,
		Messages:    []llm.Message{llm.UserMessage(user)},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", purpose, err)
	}
	return resp, nil
}
