package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// claudeServer answers every request with status and body, recording the
// last request body.
func claudeServer(t *testing.T, status int, header http.Header, body any) (*AnthropicProvider, *[]byte) {
	t.Helper()
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5"}, &got
}

func claudeMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 48},
	}
}

func claudeError(kind, msg string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": msg}}
}

func TestAnthropicProvider_Text(t *testing.T) {
	p, sent := claudeServer(t, http.StatusOK, nil, claudeMessage("**Summary:** fatigue improving.", "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an oncology care assistant.",
		Messages:  []Message{{Role: RoleUser, Content: "Summarize my week."}},
		MaxTokens: 512,
	})
	require.NoError(t, err)
	assert.Equal(t, "**Summary:** fatigue improving.", resp.Text())
	assert.Equal(t, Usage{InputTokens: 120, OutputTokens: 48, TotalTokens: 168}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5", resp.Model)

	var body map[string]any
	require.NoError(t, json.Unmarshal(*sent, &body))
	assert.Equal(t, "claude-haiku-4-5", body["model"])
	assert.EqualValues(t, 512, body["max_tokens"])
}

func TestAnthropicProvider_StructuredOutput(t *testing.T) {
	fenced := "```json\n{\"title\":\"Rest\",\"content\":\"Be gentle today.\"}\n```"
	p, _ := claudeServer(t, http.StatusOK, nil, claudeMessage(fenced, "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "insight"}},
		Schema:    insightSchema,
		MaxTokens: 256,
	})
	require.NoError(t, err)
	doc, err := Decode[insightDoc](resp)
	require.NoError(t, err)
	assert.Equal(t, "Rest", doc.Title)
}

func TestAnthropicProvider_TruncatedStructuredOutput(t *testing.T) {
	p, _ := claudeServer(t, http.StatusOK, nil, claudeMessage(`{"title":"Re`, "max_tokens"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "insight"}},
		Schema:    insightSchema,
		MaxTokens: 8,
	})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, `{"title":"Re`, string(maxTok.Content))
}

func TestAnthropicProvider_Errors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		p, _ := claudeServer(t, http.StatusTooManyRequests,
			http.Header{"Retry-After": {"2"}}, claudeError("rate_limit_error", "slow down"))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		var rl *ErrRateLimit
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, "2s", rl.RetryAfter.String())
	})

	t.Run("server error", func(t *testing.T) {
		p, _ := claudeServer(t, http.StatusInternalServerError, nil, claudeError("api_error", "boom"))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		var unavail *ErrProviderUnavailable
		require.ErrorAs(t, err, &unavail)
		assert.True(t, IsTransient(err))
	})

	t.Run("bad request", func(t *testing.T) {
		p, _ := claudeServer(t, http.StatusBadRequest, nil, claudeError("invalid_request_error", "unknown model"))
		_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
		var rejected *ErrRequestRejected
		require.ErrorAs(t, err, &rejected)
		assert.False(t, IsTransient(err))
	})
}

func TestAnthropicMessages_Roles(t *testing.T) {
	msgs := anthropicMessages([]Message{
		{Role: RoleUser, Content: "What is Zoladex?"},
		{Role: RoleAssistant, Content: "An injection."},
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)
}

func TestNewAnthropicProvider(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)

	tests := map[string]string{
		"claude-haiku":    "claude-haiku-4-5",
		"claude-sonnet":   "claude-sonnet-4-5",
		"claude-opus-4-1": "claude-opus-4-1",
	}
	for in, want := range tests {
		p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: in})
		require.NoError(t, err)
		assert.Equal(t, want, p.ModelID())
	}
}
