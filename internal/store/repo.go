package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SurveyEventData captures a completed screener result.
type SurveyEventData struct {
	SurveyID       string
	Type           string
	Date           string // YYYY-MM-DD
	Score          int
	Interpretation string
	RequestedBy    string
	Details        map[string]string
}

// SurveyRecord is a persisted survey event.
type SurveyRecord struct {
	SurveyEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// SymptomEventData captures one symptom check-in.
type SymptomEventData struct {
	LogID   string
	Date    string // YYYY-MM-DD
	Fatigue int
	Nausea  int
	Pain    int
	Mood    int
	Notes   string
}

// SymptomRecord is a persisted symptom event.
type SymptomRecord struct {
	SymptomEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a persisted LLM request event.
type LLMRequestEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsageStats aggregates LLM calls by purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage by model for cost estimation.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LLMRecorder appends LLM request events.
type LLMRecorder interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// SurveyRepo stores screener results.
type SurveyRepo interface {
	AppendSurvey(ctx context.Context, data SurveyEventData) error

	// QuerySurveys returns surveys newest first. An empty surveyType
	// matches every instrument.
	QuerySurveys(ctx context.Context, surveyType string, opts QueryOpts) ([]SurveyRecord, error)

	// LatestSurvey returns the newest survey of the type, or nil if none.
	LatestSurvey(ctx context.Context, surveyType string) (*SurveyRecord, error)
}

// SymptomRepo stores symptom check-ins.
type SymptomRepo interface {
	AppendSymptom(ctx context.Context, data SymptomEventData) error

	// QuerySymptoms returns symptom logs newest first.
	QuerySymptoms(ctx context.Context, opts QueryOpts) ([]SymptomRecord, error)
}

// EventRepo provides append and query access to every event type.
type EventRepo interface {
	SurveyRepo
	SymptomRepo
	LLMRecorder

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns the event with the given ID, or nil if missing.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
