package llm

import "errors"

// OpenRouter speaks the OpenAI chat API, so it reuses OpenAIProvider with a
// different endpoint and vendor-prefixed model IDs such as
// "google/gemini-2.5-flash", which are sent unchanged.
const openRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider routes requests through OpenRouter.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	url := cfg.BaseURL
	if url == "" {
		url = openRouterURL
	}
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: url,
		// Attribution shown on OpenRouter's app rankings.
		Headers: map[string]string{
			"HTTP-Referer": "https://github.com/curanostics/curanostics",
			"X-Title":      "Curanostics",
		},
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{p}, nil
}
