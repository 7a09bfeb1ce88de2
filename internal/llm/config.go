package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects a vendor and holds the settings for each of them.
type Config struct {
	// Provider is "gemini", "openai", "anthropic", "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string

	// BaseURL points the client at an OpenAI-compatible endpoint.
	BaseURL string
	Headers map[string]string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// vendor maps a provider name to its key and model fields. Discovery
// probes vendors in this order.
type vendor struct {
	name  string
	key   func(*Config) *string
	model func(*Config) *string
}

var vendors = []vendor{
	{"gemini", func(c *Config) *string { return &c.Gemini.APIKey }, func(c *Config) *string { return &c.Gemini.Model }},
	{"openai", func(c *Config) *string { return &c.OpenAI.APIKey }, func(c *Config) *string { return &c.OpenAI.Model }},
	{"anthropic", func(c *Config) *string { return &c.Anthropic.APIKey }, func(c *Config) *string { return &c.Anthropic.Model }},
	{"openrouter", func(c *Config) *string { return &c.OpenRouter.APIKey }, func(c *Config) *string { return &c.OpenRouter.Model }},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// envPrefix is the prefix of the variables this app reads for itself,
// e.g. CURANOSTICS_GEMINI_MODEL.
const envPrefix = "CURANOSTICS_"

func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays the CURANOSTICS_ variables on DefaultConfig.
// A malformed CURANOSTICS_LLM_TIMEOUT is ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, envPrefix+"LLM_PROVIDER")
	if d, err := time.ParseDuration(os.Getenv(envPrefix + "LLM_TIMEOUT")); err == nil {
		cfg.Timeout = d
	}
	for _, v := range vendors {
		up := envPrefix + strings.ToUpper(v.name)
		setFromEnv(v.key(&cfg), up+"_API_KEY")
		setFromEnv(v.model(&cfg), up+"_MODEL")
	}
	setFromEnv(&cfg.OpenAI.BaseURL, envPrefix+"OPENAI_BASE_URL")
	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first vendor whose standard key, such as
// GEMINI_API_KEY, is set. It reports false when none is.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendors {
		k := os.Getenv(strings.ToUpper(v.name) + "_API_KEY")
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = v.name
		*v.key(&cfg) = k
		return cfg, true
	}
	return Config{}, false
}

// HasProviderEnv reports whether the provider was chosen explicitly
// through CURANOSTICS_LLM_PROVIDER.
func HasProviderEnv() bool {
	return os.Getenv(envPrefix+"LLM_PROVIDER") != ""
}

// SetModel overrides the selected vendor's model. Empty keeps the default.
func (c *Config) SetModel(model string) {
	if v, ok := lookupVendor(c.Provider); ok && model != "" {
		*v.model(c) = model
	}
}

// SelectedModel returns the selected vendor's model, or "" for mock.
func (c Config) SelectedModel() string {
	if v, ok := lookupVendor(c.Provider); ok {
		return *v.model(&c)
	}
	return ""
}

// Validate checks that the provider is known and has an API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	v, ok := lookupVendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *v.key(&c) == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", envPrefix, strings.ToUpper(v.name), v.name)
	}
	return nil
}
