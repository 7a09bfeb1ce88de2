package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage("Stable week."), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockText("Fatigue is easing."),
	)

	first, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "trends"}}})
	require.NoError(t, err)
	assert.Equal(t, "Stable week.", first.Text())
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, "end", first.StopReason)

	second, err := mock.Generate(context.Background(), Request{System: "sys"})
	require.NoError(t, err)
	assert.Equal(t, "Fatigue is easing.", second.Text())

	assert.Equal(t, 2, mock.CallCount())
	last, ok := mock.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "sys", last.System)
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	mock := NewMockProvider()
	_, ok := mock.LastRequest()
	assert.False(t, ok)

	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.True(t, IsTransient(err))

	mock.Enqueue(MockText("late"))
	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "late", resp.Text())
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, time.Second, rl.RetryAfter)
	assert.Equal(t, "mock", mock.ModelID())
}

type insightDoc struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var insightSchema = &Schema{
	Name: "test-insight",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":   map[string]any{"type": "string"},
			"content": map[string]any{"type": "string"},
		},
		"required": []any{"title", "content"},
	},
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(
		MockJSON(insightDoc{Title: "Rest", Content: "Be gentle today."}),
		MockJSON(map[string]string{"title": "Rest"}),
	)

	resp, err := mock.Generate(context.Background(), Request{Schema: insightSchema})
	require.NoError(t, err)
	doc, err := Decode[insightDoc](resp)
	require.NoError(t, err)
	assert.Equal(t, insightDoc{Title: "Rest", Content: "Be gentle today."}, doc)

	_, err = mock.Generate(context.Background(), Request{Schema: insightSchema})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestDecode(t *testing.T) {
	_, err := Decode[insightDoc](nil)
	assert.Error(t, err)

	_, err = Decode[insightDoc](&Response{Content: json.RawMessage("not json")})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", PurposeFrom(ctx))
	assert.Equal(t, UnlabeledPurpose, purposeOrDefault(ctx))

	ctx = WithPurpose(ctx, "clinical-summary")
	assert.Equal(t, "clinical-summary", PurposeFrom(ctx))
	assert.Equal(t, "clinical-summary", purposeOrDefault(ctx))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("connection reset"), true},
		{&ErrRateLimit{}, true},
		{&ErrProviderUnavailable{}, true},
		{&ErrInvalidResponse{Err: errors.New("x")}, true},
		{&ErrMaxTokensExceeded{}, false},
		{&ErrRequestRejected{Status: 400}, false},
		{context.Canceled, false},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsTransient(tt.err), "%v", tt.err)
	}
}

func TestClassifyStatus(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "7")

	var rl *ErrRateLimit
	require.ErrorAs(t, classifyStatus(http.StatusTooManyRequests, h, errors.New("slow down")), &rl)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)

	var rejected *ErrRequestRejected
	require.ErrorAs(t, classifyStatus(http.StatusUnauthorized, nil, errors.New("bad key")), &rejected)
	assert.Equal(t, 401, rejected.Status)

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, classifyStatus(http.StatusBadGateway, nil, errors.New("502")), &unavail)

	assert.Zero(t, retryAfter(http.Header{"Retry-After": {"Wed, 21 Oct 2026 07:28:00 GMT"}}))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CURANOSTICS_LLM_PROVIDER", "openai")
	t.Setenv("CURANOSTICS_OPENAI_API_KEY", "sk-env")
	t.Setenv("CURANOSTICS_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("CURANOSTICS_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout.Seconds() != 5 {
		t.Errorf("timeout = %s, want 5s", cfg.Timeout)
	}
	if !HasProviderEnv() {
		t.Error("HasProviderEnv() = false")
	}
}

func TestDiscoverConfig_Priority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.Provider)
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, _ = DiscoverConfig()
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Errorf("provider = %q, want gemini", cfg.Provider)
	}
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetModel("gemini-2.5-pro")
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("gemini model = %q", cfg.Gemini.Model)
	}
	cfg.SetModel("")
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("empty model should keep %q, got %q", "gemini-2.5-pro", cfg.Gemini.Model)
	}
}

func TestConfig_SelectedModel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-flash", cfg.SelectedModel())

	cfg.Provider = "anthropic"
	cfg.SetModel("claude-sonnet")
	assert.Equal(t, "claude-sonnet", cfg.SelectedModel())

	cfg.Provider = "mock"
	assert.Empty(t, cfg.SelectedModel())
}

func TestResponseText(t *testing.T) {
	r := &Response{Content: json.RawMessage("Plain **markdown** text")}
	if r.Text() != "Plain **markdown** text" {
		t.Errorf("Text() = %q", r.Text())
	}
}
