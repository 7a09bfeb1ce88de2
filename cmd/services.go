package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/curanostics/curanostics/internal/insights"
	"github.com/curanostics/curanostics/internal/llm"
	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/store"
	"github.com/curanostics/curanostics/internal/surveys"
	"github.com/curanostics/curanostics/internal/symptoms"
)

// errNoProvider is returned when neither the environment nor the config
// file selects an LLM provider.
var errNoProvider = errors.New("no LLM provider configured; set CURANOSTICS_LLM_PROVIDER or a standard API key such as GEMINI_API_KEY")

// llmConfig merges the provider settings. Explicit CURANOSTICS_ variables
// win, then the config file, then the first standard API key found. The
// second result names where the provider choice came from.
func llmConfig() (llm.Config, string, error) {
	if llm.HasProviderEnv() {
		return llm.ConfigFromEnv(), "CURANOSTICS_LLM_PROVIDER", nil
	}

	applyFile := func(c llm.Config) llm.Config {
		c.SetModel(cfg.LLM.Model)
		if cfg.LLM.Timeout > 0 {
			c.Timeout = cfg.LLM.Timeout
		}
		return c
	}

	if cfg.LLM.Provider != "" {
		c := llm.ConfigFromEnv()
		c.Provider = cfg.LLM.Provider
		return applyFile(c), "config file", nil
	}
	if c, ok := llm.DiscoverConfig(); ok {
		return applyFile(c), strings.ToUpper(c.Provider) + "_API_KEY", nil
	}
	return llm.Config{}, "", errNoProvider
}

// newProvider builds the configured LLM provider, recording every request
// in the event store.
func newProvider(ctx context.Context, recorder store.LLMRecorder) (llm.Provider, error) {
	c, _, err := llmConfig()
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, c, recorder, logger)
}

// newInsights returns an insights service, or an error when no provider
// can be built.
func newInsights(ctx context.Context, recorder store.LLMRecorder) (*insights.Service, error) {
	provider, err := newProvider(ctx, recorder)
	if err != nil {
		return nil, err
	}
	return insights.NewService(provider, insights.DefaultConfig(), logger), nil
}

// loadProfile seeds the demo patient and replays everything persisted.
func loadProfile(ctx context.Context, sv *surveys.Service, sy *symptoms.Service) (patient.Profile, error) {
	p := patient.Demo()
	if cfg.PatientName != "" {
		p.Name = cfg.PatientName
	}

	p, err := sv.Restore(ctx, p)
	if err != nil {
		return p, fmt.Errorf("restore surveys: %w", err)
	}
	return sy.Restore(ctx, p)
}
