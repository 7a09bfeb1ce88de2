package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/curanostics/curanostics/internal/store"
)

// recordingProvider writes every attempt to the request log.
type recordingProvider struct {
	inner    Provider
	name     string
	recorder store.LLMRecorder
	logger   *zap.Logger
}

// WithLogging records each Generate call through recorder and logs it.
// name is the configured provider, e.g. "gemini".
func WithLogging(p Provider, name string, recorder store.LLMRecorder, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recordingProvider{inner: p, name: name, recorder: recorder, logger: logger}
}

func (r *recordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := purposeOrDefault(ctx)
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:    r.name,
		Model:       r.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	log := r.logger.With(
		zap.String("purpose", purpose),
		zap.String("model", ev.Model),
		zap.Duration("latency", elapsed),
	)
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Warn("llm request failed", zap.Error(err))
	} else {
		log.Debug("llm request", zap.Int("input_tokens", ev.InputTokens), zap.Int("output_tokens", ev.OutputTokens))
	}

	// Cancelled and timed-out requests are recorded too.
	if recErr := r.recorder.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil {
		log.Warn("record llm request", zap.Error(recErr))
	}
	return resp, err
}

func (r *recordingProvider) ModelID() string {
	return r.inner.ModelID()
}

// transcript renders req as labelled blocks for the request log.
func transcript(req Request) string {
	var b strings.Builder
	block := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
